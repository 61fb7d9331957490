// Package config loads runtime settings from an optional .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-sphere-marcher/pkg/output"
)

// Config holds settings shared by the command line and web front ends
type Config struct {
	OutputDir string          // Directory for rendered images
	Workers   int             // Render workers (0 = use CPU count)
	Port      int             // Web server port
	S3        output.S3Config // Optional upload target
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		OutputDir: "output",
		Workers:   0,
		Port:      8080,
	}
}

// Load reads envFile if it exists, then overlays SDF_* environment variables
// on the defaults. Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	cfg.OutputDir = getEnv("SDF_OUTPUT_DIR", cfg.OutputDir)

	var err error
	if cfg.Workers, err = getEnvInt("SDF_WORKERS", cfg.Workers); err != nil {
		return Config{}, err
	}
	if cfg.Port, err = getEnvInt("SDF_PORT", cfg.Port); err != nil {
		return Config{}, err
	}

	cfg.S3 = output.S3Config{
		AccessKey: os.Getenv("SDF_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("SDF_S3_SECRET_KEY"),
		Endpoint:  os.Getenv("SDF_S3_ENDPOINT"),
		Region:    getEnv("SDF_S3_REGION", "us-east-1"),
		Bucket:    os.Getenv("SDF_S3_BUCKET"),
	}
	return cfg, nil
}

// getEnv returns an environment variable with a default value
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s %d: must not be negative", key, n)
	}
	return n, nil
}
