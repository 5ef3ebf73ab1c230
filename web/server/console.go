package server

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/log"
)

// RenderLogger implements core.Logger by tagging messages with a render ID
// before forwarding them to the server log
type RenderLogger struct {
	renderID string
	logger   log.Logger
}

// NewRenderLogger creates a new logger for a specific render
func NewRenderLogger(renderID string, logger log.Logger) core.Logger {
	return &RenderLogger{
		renderID: renderID,
		logger:   logger,
	}
}

// Debugf implements core.Logger interface
func (rl *RenderLogger) Debugf(format string, args ...interface{}) {
	rl.logger.Debugf("render "+rl.renderID+": "+format, args...)
}

// Infof implements core.Logger interface
func (rl *RenderLogger) Infof(format string, args ...interface{}) {
	rl.logger.Infof("render "+rl.renderID+": "+format, args...)
}
