package handle

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"hyrox-calc/api/internal/ocr"
)

type Handle struct {
	engs    *ocr.Engines
	timeout time.Duration
	log     zerolog.Logger
}

func New(engs *ocr.Engines, timeout time.Duration, log zerolog.Logger) *Handle {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Handle{
		engs:    engs,
		timeout: timeout,
		log:     log.With().Str("component", "handle").Logger(),
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
