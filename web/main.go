package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-sphere-marcher/pkg/config"
	"github.com/df07/go-sphere-marcher/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 0, "Port to serve on (0 = SDF_PORT or 8080)")
	envFile := flag.String("env", ".env", "Environment file with SDF_* settings")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Port = *port
	}

	webServer := server.NewServer(cfg)

	log.Printf("Sphere Marcher Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", cfg.Port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
