package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"hyrox-calc/api/internal/ocr"
	"hyrox-calc/api/internal/util"
)

const maxPhotoBytes = 10 << 20

var errPhotoTooLarge = fmt.Errorf("photo is larger than %d MiB", maxPhotoBytes>>20)

func (r *Router) acceptPhoto(ctx context.Context, chatID int64, fileID, mimeHint string) {
	eng, err := r.Engines.GetEngine("")
	if err != nil {
		r.SendError(chatID, err)
		return
	}

	url, err := r.Bot.GetFileDirectURL(fileID)
	if err != nil {
		r.SendError(chatID, err)
		return
	}
	img, err := download(ctx, url)
	if err != nil {
		r.SendError(chatID, fmt.Errorf("download: %w", err))
		return
	}
	r.send(chatID, "Photo received, reading the scoreboard…")

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	x, err := ocr.ExtractWorkout(ctx, eng, img, util.PickMIME("", mimeHint, img))
	if err != nil {
		r.Log.Error().Err(err).Int64("chat_id", chatID).Msg("ocr failed")
		r.SendError(chatID, err)
		return
	}

	st := r.state(chatID)
	st.apply(x)
	r.Log.Info().
		Int64("chat_id", chatID).
		Str("confidence", string(x.Confidence)).
		Int("stations", len(x.Stations)).
		Msg("scoreboard applied")

	r.sendSheet(chatID, extractionHeader(x), st)
}

func download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes+1))
	if err != nil {
		return nil, err
	}
	if len(b) > maxPhotoBytes {
		return nil, errPhotoTooLarge
	}
	return b, nil
}

func httpClient() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
}
