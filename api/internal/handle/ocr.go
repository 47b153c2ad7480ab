package handle

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"hyrox-calc/api/internal/ocr"
	"hyrox-calc/api/internal/util"
)

// MaxUploadBytes caps one scoreboard photo.
const MaxUploadBytes = 10 << 20

// OCRJSONRequest is the non-multipart form of an upload.
type OCRJSONRequest struct {
	Engine   string `json:"engine"`
	ImageB64 string `json:"image_b64"`
	Mime     string `json:"mime"`
}

// OCR reads one scoreboard image (multipart field "image", or JSON image_b64)
// and returns the normalized extraction.
func (h *Handle) OCR(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)

	img, mimeType, engineName, status, err := readImage(r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	engine, err := h.engs.GetEngine(engineName)
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, ocr.ErrEngineNotConfigured) {
			code = http.StatusInternalServerError
		}
		writeError(w, code, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout(r))
	defer cancel()

	out, err := ocr.ExtractWorkout(ctx, engine, img, mimeType)
	if err != nil {
		h.log.Error().Err(err).Str("engine", engine.Name()).Int("bytes", len(img)).Msg("ocr failed")
		writeError(w, http.StatusBadGateway, "ocr error: "+err.Error())
		return
	}

	h.log.Info().
		Str("engine", engine.Name()).
		Str("confidence", string(out.Confidence)).
		Int("stations", len(out.Stations)).
		Msg("ocr done")
	writeJSON(w, http.StatusOK, out)
}

func readImage(r *http.Request) (img []byte, mimeType, engine string, status int, err error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if ct == "application/json" {
		var req OCRJSONRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, "", "", statusFor(err), errors.New("bad json: " + err.Error())
		}
		b, hint, err := util.DecodeBase64MaybeDataURL(req.ImageB64)
		if err != nil || len(b) == 0 {
			return nil, "", "", http.StatusBadRequest, errors.New("bad image_b64")
		}
		m := util.PickMIME(req.Mime, hint, b)
		if !util.IsImageMIME(m) {
			return nil, "", "", http.StatusBadRequest, errors.New("only image files are accepted")
		}
		return b, m, req.Engine, 0, nil
	}

	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		return nil, "", "", statusFor(err), errors.New("bad multipart form: " + err.Error())
	}
	f, hdr, err := r.FormFile("image")
	if err != nil {
		return nil, "", "", http.StatusBadRequest, errors.New("image file is required")
	}
	defer f.Close()

	declared := hdr.Header.Get("Content-Type")
	if !util.IsImageMIME(declared) {
		return nil, "", "", http.StatusBadRequest, errors.New("only image files are accepted")
	}
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, "", "", statusFor(err), err
	}
	if len(b) == 0 {
		return nil, "", "", http.StatusBadRequest, errors.New("image file is empty")
	}
	return b, util.PickMIME(declared, "", b), r.FormValue("engine"), 0, nil
}

func statusFor(err error) int {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// requestTimeout honours X-Request-Timeout (seconds) up to the configured cap.
func (h *Handle) requestTimeout(r *http.Request) time.Duration {
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			if d := time.Duration(v) * time.Second; d < h.timeout {
				return d
			}
		}
	}
	return h.timeout
}
