package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hyrox-calc/api/internal/metrics"
)

// Engine sends one image plus Prompt to a vision model and returns its raw text.
type Engine interface {
	Name() string
	GetModel() string
	Extract(ctx context.Context, image []byte, mime string) (string, error)
}

type Engines struct {
	Gemini Engine
	OpenAI Engine
}

// GetEngine resolves an engine by name. Empty picks Gemini, falling back to
// OpenAI when only that one is configured.
func (e *Engines) GetEngine(name string) (Engine, error) {
	if e == nil {
		e = &Engines{}
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		if e.Gemini != nil {
			return e.Gemini, nil
		}
		if e.OpenAI != nil {
			return e.OpenAI, nil
		}
		return nil, ErrEngineNotConfigured
	case "gemini":
		if e.Gemini == nil {
			return nil, fmt.Errorf("%w: gemini", ErrEngineNotConfigured)
		}
		return e.Gemini, nil
	case "gpt", "openai":
		if e.OpenAI == nil {
			return nil, fmt.Errorf("%w: gpt", ErrEngineNotConfigured)
		}
		return e.OpenAI, nil
	default:
		return nil, fmt.Errorf("unknown engine %q; use 'gemini' or 'gpt'", name)
	}
}

// ExtractWorkout runs the engine on one image and normalizes the answer.
func ExtractWorkout(ctx context.Context, eng Engine, image []byte, mime string) (Extraction, error) {
	start := time.Now()
	raw, err := eng.Extract(ctx, image, mime)
	metrics.UpstreamDuration.WithLabelValues(eng.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues(eng.Name(), "upstream_error").Inc()
		return Extraction{}, fmt.Errorf("%w: %s: %w", ErrUpstream, eng.Name(), err)
	}

	x, err := Normalize(raw)
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues(eng.Name(), "parse_error").Inc()
		return Extraction{}, err
	}
	metrics.ExtractionsTotal.WithLabelValues(eng.Name(), string(x.Confidence)).Inc()
	return x, nil
}
