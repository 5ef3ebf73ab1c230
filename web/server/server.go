package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/log"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// Parameter limits shared by the render and inspect endpoints
const (
	minDimension = 1
	maxDimension = 2000
	maxSamples   = 10000
	maxDepth     = 1000
	defaultSeed  = 42
)

// Server handles web requests for the raytracer
type Server struct {
	port     int
	logger   log.Logger
	renderID atomic.Uint64
}

// NewServer creates a new web server
func NewServer(port int, logger log.Logger) *Server {
	if logger == nil {
		logger = log.New("server")
	}
	return &Server{port: port, logger: logger}
}

// SceneRequest holds the scene parameters common to every endpoint
type SceneRequest struct {
	Scene           string `json:"scene"`           // Scene ID (e.g., "default")
	Width           int    `json:"width"`           // Image width
	Height          int    `json:"height"`          // Image height
	SamplesPerPixel int    `json:"samplesPerPixel"` // Rays per pixel
	MaxDepth        int    `json:"maxDepth"`        // Maximum ray bounce depth
	Seed            int64  `json:"seed"`            // Sampler seed
	Ground          string `json:"ground"`          // Optional ground color name
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Noticef("starting web server on http://localhost%s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Notice("shutting down web server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"scenes": scene.ListScenes()})
}

// handleSceneConfig returns the recommended configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := scene.Create(sceneName, defaultSeed)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := sceneObj.Config
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
			"seed":            config.Seed,
		},
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": minDimension, "max": maxDimension},
			"height":          map[string]int{"min": minDimension, "max": maxDimension},
			"samplesPerPixel": map[string]int{"min": 1, "max": maxSamples},
			"maxDepth":        map[string]int{"min": 0, "max": maxDepth},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// parseSceneRequest builds the requested scene. Omitted parameters fall
// back to the scene's recommended settings.
func (s *Server) parseSceneRequest(r *http.Request) (*scene.Scene, *SceneRequest, error) {
	values := r.URL.Query()
	req := &SceneRequest{Scene: values.Get("scene"), Ground: values.Get("ground")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Seed, err = parseInt64Param(values, "seed", defaultSeed); err != nil {
		return nil, nil, err
	}

	sceneObj, err := scene.Create(req.Scene, req.Seed)
	if err != nil {
		return nil, nil, err
	}
	defaults := sceneObj.Config

	if req.Width, err = parseIntParam(values, "width", defaults.Width, minDimension, maxDimension); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(values, "height", defaults.Height, minDimension, maxDimension); err != nil {
		return nil, nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "spp", defaults.SamplesPerPixel, 1, maxSamples); err != nil {
		return nil, nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", defaults.MaxDepth, 0, maxDepth); err != nil {
		return nil, nil, err
	}

	if req.Ground != "" {
		albedo, err := material.NamedColor(req.Ground)
		if err != nil {
			return nil, nil, err
		}
		if !sceneObj.SetGroundColor(albedo) {
			return nil, nil, fmt.Errorf("scene %q has no ground", req.Scene)
		}
	}

	sceneObj.Resize(req.Width, req.Height)
	sceneObj.Config.SamplesPerPixel = req.SamplesPerPixel
	sceneObj.Config.MaxDepth = req.MaxDepth
	sceneObj.Config.Seed = req.Seed

	return sceneObj, req, nil
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

// parseInt64Param parses an unbounded 64-bit integer parameter
func parseInt64Param(values url.Values, key string, defaultValue int64) (int64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
