package webhook

import (
	"context"

	"github.com/tkwang/quoteline/internal/dispatch"
	"github.com/tkwang/quoteline/internal/line"
)

// EventProcessor defines the interface for processing a decoded event batch.
type EventProcessor interface {
	Process(ctx context.Context, events []line.Event) []dispatch.Outcome
}

// Config holds webhook server configuration.
type Config struct {
	// Listen is the address the HTTP server binds to.
	Listen string

	// Path is the URL path for the platform callback (e.g. "/callback").
	Path string

	// Secret is the channel secret used for HMAC signature verification.
	Secret string

	// MaxBodySize is the maximum allowed request body size in bytes (default: 1MB).
	MaxBodySize int64
}

// ErrorResponse is the JSON response for webhook errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Default values
const (
	DefaultMaxBodySize = 1048576 // 1 MB
	DefaultPath        = "/callback"
)
