package base64_test

import (
	"roamalto/shared/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "png data URI",
			input:    "data:image/png;base64,iVBORw0KGgo=",
			expected: "image/png",
		},
		{
			name:     "jpeg data URI",
			input:    "data:image/jpeg;base64,/9j/4AAQ",
			expected: "image/jpeg",
		},
		{
			name:     "missing marker",
			input:    "image/png",
			expected: "",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base64.GetContentType(tt.input))
		})
	}
}

func TestDecode(t *testing.T) {
	decoded, err := base64.Decode("data:text/plain;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), decoded)
}

func TestDecode_InvalidURI(t *testing.T) {
	_, err := base64.Decode("not a data uri")
	assert.ErrorIs(t, err, base64.ErrInvalidDataURI)
}
