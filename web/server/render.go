package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// handleRender renders the requested scene and responds with a PNG.
// Render statistics travel in X-Render-* headers.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sceneObj, req, err := s.parseSceneRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	id := s.renderID.Add(1)
	logger := NewRenderLogger(strconv.FormatUint(id, 10), s.logger)

	if req.Width*req.Height > 800*600 && req.SamplesPerPixel > 100 {
		s.logger.Warningf("render %d: large image with high samples may render slowly", id)
	}

	raytracer, err := renderer.NewRaytracer(sceneObj, sceneObj.Config, logger)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// The request context cancels the render when the client disconnects
	img, stats, err := raytracer.Render(r.Context())
	if err != nil {
		if errors.Is(err, renderer.ErrInterrupted) {
			s.logger.Infof("render %d: %v", id, err)
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := output.WritePNG(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Id", strconv.FormatUint(id, 10))
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
