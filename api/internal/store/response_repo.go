package store

import (
	"context"
	"database/sql"
	"time"
)

var ErrNotFound = sql.ErrNoRows

const schema = `
create table if not exists ocr_responses (
	image_hash text        not null,
	engine     text        not null,
	model      text        not null,
	raw_text   text        not null,
	created_at timestamptz not null default now(),
	primary key (image_hash, engine, model)
)`

// ResponseRepo keeps raw vision-model answers in Postgres so the same photo
// is never sent upstream twice.
type ResponseRepo struct{ DB *sql.DB }

func NewResponseRepo(db *sql.DB) *ResponseRepo { return &ResponseRepo{DB: db} }

func (r *ResponseRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, schema)
	return err
}

// Find returns the cached answer for (imageHash, engine, model).
// If maxAge > 0 and the row is older, ErrNotFound is returned.
func (r *ResponseRepo) Find(ctx context.Context, imageHash, engine, model string, maxAge time.Duration) (string, error) {
	const q = `select raw_text, created_at
	           from ocr_responses
	           where image_hash=$1 and engine=$2 and model=$3`
	var (
		raw string
		ts  time.Time
	)
	if err := r.DB.QueryRowContext(ctx, q, imageHash, engine, model).Scan(&raw, &ts); err != nil {
		return "", err
	}
	if maxAge > 0 && time.Since(ts) > maxAge {
		return "", ErrNotFound
	}
	return raw, nil
}

// Upsert stores or refreshes an answer. PK: (image_hash, engine, model).
func (r *ResponseRepo) Upsert(ctx context.Context, imageHash, engine, model, raw string) error {
	const q = `
insert into ocr_responses(image_hash, engine, model, raw_text)
values ($1,$2,$3,$4)
on conflict (image_hash, engine, model)
do update set raw_text=excluded.raw_text, created_at=now()`
	_, err := r.DB.ExecContext(ctx, q, imageHash, engine, model, raw)
	return err
}
