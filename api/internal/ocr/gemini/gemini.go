package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"hyrox-calc/api/internal/ocr"
)

const attempts = 3

var retryBackoff = 300 * time.Millisecond

type Engine struct {
	APIKey string
	Model  string
	log    zerolog.Logger
}

func New(apiKey, model string, log zerolog.Logger) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
		log:    log.With().Str("component", "gemini").Logger(),
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

// Extract sends the image with ocr.Prompt and returns the model's text as-is.
func (e *Engine) Extract(ctx context.Context, image []byte, mime string) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(0),
	}

	parts := []genai.Part{
		&genai.Blob{MIMEType: mime, Data: image},
		genai.Text(ocr.Prompt),
	}

	resp, err := withRetry(ctx, e.log, func() (*genai.GenerateContentResponse, error) {
		return m.GenerateContent(ctx, parts...)
	})
	if err != nil {
		return "", err
	}
	txt := firstText(resp)
	if strings.TrimSpace(txt) == "" {
		return "", fmt.Errorf("gemini extract: empty response")
	}
	e.log.Debug().Int("bytes", len(txt)).Str("model", e.Model).Msg("extract done")
	return txt, nil
}

// withRetry makes up to attempts calls with linear backoff between them. The
// wait is cut short when ctx ends and skipped after the last attempt.
func withRetry[T any](ctx context.Context, log zerolog.Logger, call func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		out, err := call()
		if err == nil {
			return out, nil
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Msg("generate content failed")
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return zero, err
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}
	return zero, lastErr
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
