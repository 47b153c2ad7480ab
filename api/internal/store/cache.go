package store

import (
	"context"
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"hyrox-calc/api/internal/metrics"
	"hyrox-calc/api/internal/ocr"
	"hyrox-calc/api/internal/util"
)

// ResponseStore is the persistent layer behind CachedEngine.
type ResponseStore interface {
	Find(ctx context.Context, imageHash, engine, model string, maxAge time.Duration) (string, error)
	Upsert(ctx context.Context, imageHash, engine, model, raw string) error
}

// CachedEngine puts an in-memory LRU and an optional ResponseStore in front
// of an ocr.Engine. Only answers that normalize are cached.
type CachedEngine struct {
	next   ocr.Engine
	mem    *lru.Cache[string, string]
	repo   ResponseStore
	maxAge time.Duration
	log    zerolog.Logger
}

func NewCachedEngine(next ocr.Engine, size int, repo ResponseStore, maxAge time.Duration, log zerolog.Logger) (*CachedEngine, error) {
	if size <= 0 {
		size = 128
	}
	mem, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &CachedEngine{
		next:   next,
		mem:    mem,
		repo:   repo,
		maxAge: maxAge,
		log:    log.With().Str("component", "ocr_cache").Logger(),
	}, nil
}

func (c *CachedEngine) Name() string     { return c.next.Name() }
func (c *CachedEngine) GetModel() string { return c.next.GetModel() }

func (c *CachedEngine) Extract(ctx context.Context, image []byte, mime string) (string, error) {
	hash := util.SHA256Hex(image)
	key := c.next.Name() + "|" + c.next.GetModel() + "|" + hash

	if raw, ok := c.mem.Get(key); ok {
		metrics.CacheLookups.WithLabelValues("memory", "hit").Inc()
		return raw, nil
	}
	metrics.CacheLookups.WithLabelValues("memory", "miss").Inc()

	if c.repo != nil {
		raw, err := c.repo.Find(ctx, hash, c.next.Name(), c.next.GetModel(), c.maxAge)
		switch {
		case err == nil:
			metrics.CacheLookups.WithLabelValues("db", "hit").Inc()
			c.mem.Add(key, raw)
			return raw, nil
		case errors.Is(err, ErrNotFound):
			metrics.CacheLookups.WithLabelValues("db", "miss").Inc()
		default:
			metrics.CacheLookups.WithLabelValues("db", "error").Inc()
			c.log.Warn().Err(err).Str("image_hash", hash).Msg("cache lookup failed")
		}
	}

	raw, err := c.next.Extract(ctx, image, mime)
	if err != nil {
		return "", err
	}
	if _, nerr := ocr.Normalize(raw); nerr != nil {
		return raw, nil
	}

	c.mem.Add(key, raw)
	if c.repo != nil {
		if err := c.repo.Upsert(ctx, hash, c.next.Name(), c.next.GetModel(), raw); err != nil {
			c.log.Warn().Err(err).Str("image_hash", hash).Msg("cache upsert failed")
		}
	}
	return raw, nil
}
