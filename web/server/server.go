package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-sphere-marcher/pkg/config"
	"github.com/df07/go-sphere-marcher/pkg/controller"
	"github.com/df07/go-sphere-marcher/pkg/core"
	"github.com/df07/go-sphere-marcher/pkg/geometry"
	"github.com/df07/go-sphere-marcher/pkg/integrator"
	"github.com/df07/go-sphere-marcher/pkg/output"
	"github.com/df07/go-sphere-marcher/pkg/renderer"
	"github.com/df07/go-sphere-marcher/pkg/scene"
)

// Size limits for requested frames
const (
	MinDimension    = 16
	MaxDimension    = 2000
	MaxBounces      = 16
	MaxMarchSteps   = 1000
	DefaultTileSize = 32
)

// FrameUploader stores encoded frames under a key
type FrameUploader interface {
	Upload(ctx context.Context, key string, data []byte) error
}

// Server handles web requests for the sphere marcher
type Server struct {
	port     int
	workers  int
	uploader FrameUploader // nil when uploads are not configured
}

// NewServer creates a new web server from runtime configuration
func NewServer(cfg config.Config) *Server {
	s := &Server{port: cfg.Port, workers: cfg.Workers}
	if cfg.S3.Enabled() {
		uploader, err := output.NewS3Uploader(cfg.S3)
		if err != nil {
			log.Printf("S3 uploads disabled: %v", err)
		} else {
			s.uploader = uploader
		}
	}
	return s
}

// SetUploader replaces the frame uploader
func (s *Server) SetUploader(uploader FrameUploader) {
	s.uploader = uploader
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene            string          `json:"scene"`            // Scene name (e.g., "default")
	Width            int             `json:"width"`            // Image width
	Height           int             `json:"height"`           // Image height
	Bounces          int             `json:"bounces"`          // Reflection bounces
	MaxSteps         int             `json:"maxSteps"`         // March iteration budget
	InitialBlockSize int             `json:"initialBlockSize"` // First progressive pass block size
	Camera           geometry.Camera `json:"-"`                // Camera after query overrides
}

// CameraJSON is the wire form of a camera. Angles are in degrees.
type CameraJSON struct {
	Position [3]float64 `json:"position"`
	PitchDeg float64    `json:"pitchDeg"`
	YawDeg   float64    `json:"yawDeg"`
	HFovDeg  float64    `json:"hfovDeg"`
}

func cameraToJSON(c geometry.Camera) CameraJSON {
	return CameraJSON{
		Position: [3]float64{c.Position.X, c.Position.Y, c.Position.Z},
		PitchDeg: degrees(c.Pitch),
		YawDeg:   degrees(c.Yaw),
		HFovDeg:  degrees(c.HFov),
	}
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/frame", s.handleFrame)
	mux.HandleFunc("/api/camera", s.handleCamera)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in and JSON scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListScenes()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := scene.Create(sceneName)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown scene: "+sceneName)
		return
	}

	march := integrator.DefaultMarchConfig()
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":            sceneObj.Width,
			"height":           sceneObj.Height,
			"camera":           cameraToJSON(sceneObj.Camera),
			"bounces":          march.Bounces,
			"maxSteps":         march.MaxSteps,
			"initialBlockSize": renderer.DefaultProgressiveConfig().InitialBlockSize,
			"moveStep":         controller.DefaultConfig().MoveStep,
			"rotateStepDeg":    controller.DefaultConfig().RotateStepDeg,
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": MinDimension, "max": MaxDimension},
			"height":   map[string]int{"min": MinDimension, "max": MaxDimension},
			"bounces":  map[string]int{"min": 0, "max": MaxBounces},
			"maxSteps": map[string]int{"min": 1, "max": MaxMarchSteps},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// handleCamera applies one navigation action to the camera described by the query
func (s *Server) handleCamera(w http.ResponseWriter, r *http.Request) {
	req := &RenderRequest{}
	if _, err := s.parseCommonSceneParams(r, req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	action, err := controller.ParseAction(r.URL.Query().Get("action"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	camera, changed := controller.Apply(req.Camera, action, controller.DefaultConfig())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"action":  action.String(),
		"changed": changed,
		"camera":  cameraToJSON(camera),
	})
}

// handleFrame renders one full-resolution frame as PNG, optionally uploading it
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	req := &RenderRequest{}
	sceneObj, err := s.parseCommonSceneParams(r, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rt, err := s.newRaytracer(sceneObj, req, renderer.NewDefaultLogger())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sink := renderer.NewImageSink(req.Width, req.Height)
	stats, err := rt.RenderFrame(r.Context(), req.Camera, sink)
	if err != nil {
		log.Printf("Frame render failed: %v", err)
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	data, err := output.EncodePNG(sink.Image)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if key := r.URL.Query().Get("upload"); key != "" {
		if s.uploader == nil {
			writeError(w, http.StatusBadRequest, "Uploads are not configured")
			return
		}
		if err := s.uploader.Upload(r.Context(), key, data); err != nil {
			log.Printf("Frame upload failed: %v", err)
			writeError(w, http.StatusBadGateway, "Upload failed")
			return
		}
		w.Header().Set("X-Upload-Key", key)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// newRaytracer builds the integrator and frame renderer for a request
func (s *Server) newRaytracer(sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) (*renderer.Raytracer, error) {
	marchConfig := integrator.DefaultMarchConfig()
	marchConfig.Bounces = req.Bounces
	marchConfig.MaxSteps = req.MaxSteps

	integ, err := integrator.NewSphereTracingIntegrator(sceneObj, marchConfig)
	if err != nil {
		return nil, err
	}

	return renderer.NewRaytracer(integ, renderer.RenderConfig{
		Width:      req.Width,
		Height:     req.Height,
		TileSize:   DefaultTileSize,
		NumWorkers: s.workers,
	}, logger)
}

// parseCommonSceneParams resolves the scene, frame size, march limits and
// camera overrides shared by all rendering endpoints
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) (*scene.Scene, error) {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}
	sceneObj, err := scene.Create(req.Scene)
	if err != nil {
		return nil, err
	}

	march := integrator.DefaultMarchConfig()
	if req.Width, err = parseIntParam(query, "width", sceneObj.Width, MinDimension, MaxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", sceneObj.Height, MinDimension, MaxDimension); err != nil {
		return nil, err
	}
	if req.Bounces, err = parseIntParam(query, "bounces", march.Bounces, 0, MaxBounces); err != nil {
		return nil, err
	}
	if req.MaxSteps, err = parseIntParam(query, "maxSteps", march.MaxSteps, 1, MaxMarchSteps); err != nil {
		return nil, err
	}

	camera := sceneObj.Camera
	pos := cameraToJSON(camera)
	for i, key := range []string{"x", "y", "z"} {
		if pos.Position[i], err = parseFloatParam(query, key, pos.Position[i]); err != nil {
			return nil, err
		}
	}
	if pos.PitchDeg, err = parseFloatParam(query, "pitch", pos.PitchDeg); err != nil {
		return nil, err
	}
	if pos.YawDeg, err = parseFloatParam(query, "yaw", pos.YawDeg); err != nil {
		return nil, err
	}
	if pos.HFovDeg, err = parseFloatParam(query, "hfov", pos.HFovDeg); err != nil {
		return nil, err
	}

	req.Camera = geometry.NewCamera(core.NewPoint3D(pos.Position[0], pos.Position[1], pos.Position[2]), pos.PitchDeg, pos.YawDeg, pos.HFovDeg)
	if err := req.Camera.Validate(); err != nil {
		return nil, err
	}
	return sceneObj, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a finite float parameter from URL query
func parseFloatParam(values url.Values, key string, defaultValue float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
