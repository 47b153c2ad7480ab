package util

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func TestSniffMimeHTTP(t *testing.T) {
	assert.Equal(t, "image/jpeg", SniffMimeHTTP([]byte{0xFF, 0xD8, 0xFF}))
	assert.Equal(t, "image/png", SniffMimeHTTP(pngHeader))
	assert.Equal(t, "image/webp", SniffMimeHTTP([]byte("RIFF\x00\x00\x00\x00WEBPVP8 ")))
	assert.Equal(t, "image/heic", SniffMimeHTTP([]byte("\x00\x00\x00\x18ftypheic")))
	assert.Equal(t, "application/octet-stream", SniffMimeHTTP([]byte("hello")))
}

func TestIsImageMIME(t *testing.T) {
	assert.True(t, IsImageMIME("image/png"))
	assert.True(t, IsImageMIME("Image/JPEG; charset=binary"))
	assert.False(t, IsImageMIME("image/"))
	assert.False(t, IsImageMIME("application/pdf"))
	assert.False(t, IsImageMIME(""))
}

func TestDecodeBase64MaybeDataURL(t *testing.T) {
	enc := base64.StdEncoding.EncodeToString(pngHeader)

	b, mime, err := DecodeBase64MaybeDataURL("data:image/png;base64," + enc)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, b)
	assert.Equal(t, "image/png", mime)

	b, mime, err = DecodeBase64MaybeDataURL(enc)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, b)
	assert.Empty(t, mime)

	_, _, err = DecodeBase64MaybeDataURL("%%%")
	assert.Error(t, err)
}

func TestPickMIME(t *testing.T) {
	assert.Equal(t, "image/webp", PickMIME("image/webp", "image/png", pngHeader))
	assert.Equal(t, "image/png", PickMIME("", "image/png", nil))
	assert.Equal(t, "image/png", PickMIME("application/octet-stream", "", pngHeader))
	assert.Equal(t, "image/jpeg", PickMIME("", "", nil))
}

func TestSHA256Hex(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", SHA256Hex(nil))
}
