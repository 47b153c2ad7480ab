package ocr

import (
	"errors"
	"fmt"
)

var (
	// ErrParse marks any failure to turn a model response into an Extraction.
	ErrParse = errors.New("cannot parse model response")

	ErrNoJSONFound   = fmt.Errorf("%w: no JSON object found", ErrParse)
	ErrMalformedJSON = fmt.Errorf("%w: malformed JSON", ErrParse)

	// ErrUpstream wraps transport, auth and quota failures of the vision service.
	ErrUpstream = errors.New("image recognition service failed")

	ErrEngineNotConfigured = errors.New("ocr engine is not configured")
)
