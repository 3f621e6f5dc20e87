package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64Image(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4E, 0x47}
	data := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	contentType, ext, decoded, err := DecodeBase64Image(data)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, ".png", ext)
	assert.Equal(t, payload, decoded)
}

func TestDecodeBase64ImageInvalid(t *testing.T) {
	cases := []string{
		"",
		"not-a-data-uri",
		"data:image/png;base64",
		"data:image/png,iVBORw0KGgo",
		"data:text/plain;base64,aGVsbG8=",
		"data:image/png;base64,%%%",
		"data:image/png;base64,",
	}

	for _, input := range cases {
		_, _, _, err := DecodeBase64Image(input)
		assert.ErrorIs(t, err, ErrInvalidImageData, "input: %q", input)
	}
}
