// Package caption turns a set of images plus an optional prompt into caption
// text, with a deterministic fallback when the backend cannot help.
package caption

import (
	"context"
	"errors"
	"strings"
)

// ErrService marks any transport or protocol failure of the caption backend.
var ErrService = errors.New("caption service error")

// DefaultFallback is the placeholder returned when the service fails or
// produces no usable text. It is meant to be edited by hand.
const DefaultFallback = "Edit this caption to describe the moment."

// Service is the port to the remote captioning call. One invocation is one
// attempt; retries are the caller's business.
type Service interface {
	Generate(ctx context.Context, imageURIs []string, prompt string) (string, error)
}

// Workflow wraps a Service with the fallback policy. It performs no
// persistence and never surfaces a hard failure.
type Workflow struct {
	svc      Service
	fallback string
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithFallback overrides the placeholder text. Blank values are ignored; the
// fallback contract requires non-empty text.
func WithFallback(text string) Option {
	return func(w *Workflow) {
		if strings.TrimSpace(text) != "" {
			w.fallback = text
		}
	}
}

// NewWorkflow creates a caption workflow over the given service.
func NewWorkflow(svc Service, opts ...Option) *Workflow {
	w := &Workflow{svc: svc, fallback: DefaultFallback}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// GenerateCaption asks the service for a caption. Any service error, and any
// blank or whitespace-only result, yields the fallback placeholder; a usable
// result is returned trimmed. The caller always gets some caption text.
func (w *Workflow) GenerateCaption(ctx context.Context, imageURIs []string, prompt string) string {
	text, err := w.svc.Generate(ctx, imageURIs, prompt)
	if err != nil {
		return w.fallback
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return w.fallback
	}
	return text
}
