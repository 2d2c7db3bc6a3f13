// Package enhancer is the generative-content collaborator: an external
// capability that polishes post text and produces image or video assets.
//
// The degradation contract is part of the interface: enhancement is a
// best-effort luxury, so implementations return the original input (or
// report absence) on any failure and never an error. Callers must treat a
// missing enhancement as normal behavior, not a fault to surface.
package enhancer

import "context"

// Service is a pluggable generative backend. The core never depends on a
// specific vendor's request/response shape.
type Service interface {
	// EnhanceText returns an improved version of prompt, or prompt itself
	// when enhancement is unavailable.
	EnhanceText(ctx context.Context, prompt string) string

	// GenerateImage returns an image reference for prompt. ok is false when
	// no image could be produced.
	GenerateImage(ctx context.Context, prompt string) (ref string, ok bool)

	// GenerateVideo returns a video asset reference for prompt. Generation
	// is a long-running remote job; onProgress, when non-nil, receives
	// human-readable status strings while the job runs. ok is false when no
	// video could be produced. Callers bound the job with ctx.
	GenerateVideo(ctx context.Context, prompt string, onProgress func(status string)) (ref string, ok bool)
}

// Noop is the collaborator used when no credential is configured. Every call
// degrades immediately.
type Noop struct{}

func (Noop) EnhanceText(_ context.Context, prompt string) string { return prompt }

func (Noop) GenerateImage(context.Context, string) (string, bool) { return "", false }

func (Noop) GenerateVideo(context.Context, string, func(string)) (string, bool) { return "", false }

var _ Service = Noop{}
