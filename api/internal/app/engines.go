package app

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"hyrox-calc/api/internal/config"
	"hyrox-calc/api/internal/ocr"
	"hyrox-calc/api/internal/ocr/gemini"
	"hyrox-calc/api/internal/ocr/openai"
	"hyrox-calc/api/internal/store"
)

// Engines builds the engine registry shared by the HTTP service, the bot and
// the CLI. Every engine with an API key sits behind the response cache; the
// Postgres layer is added only when a DSN is configured. The returned close
// func releases the database, if any.
func Engines(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*ocr.Engines, func(), error) {
	engs := &ocr.Engines{}
	if cfg.GeminiAPIKey == "" && cfg.OpenAIAPIKey == "" {
		log.Warn().Msg("no GEMINI_API_KEY or OPENAI_API_KEY, scoreboard recognition disabled")
		return engs, func() {}, nil
	}

	var (
		db   *sql.DB
		repo store.ResponseStore
	)
	closeFn := func() {
		if db != nil {
			_ = db.Close()
		}
	}

	if cfg.DatabaseURL != "" {
		var err error
		db, err = store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		rr := store.NewResponseRepo(db)
		if err := rr.EnsureSchema(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
		repo = rr
		log.Info().Str("db", store.SafeDSNSummary(cfg.DatabaseURL)).Msg("db connected")
	}

	wrap := func(next ocr.Engine) (ocr.Engine, error) {
		return store.NewCachedEngine(next, cfg.CacheSize, repo, cfg.CacheMaxAge, log)
	}

	var err error
	if cfg.GeminiAPIKey != "" {
		if engs.Gemini, err = wrap(gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel, log)); err != nil {
			closeFn()
			return nil, nil, err
		}
	}
	if cfg.OpenAIAPIKey != "" {
		if engs.OpenAI, err = wrap(openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, log)); err != nil {
			closeFn()
			return nil, nil, err
		}
	}
	return engs, closeFn, nil
}
