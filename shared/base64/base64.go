package base64

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDataURI = errors.New("invalid base64 data URI")

// GetContentType extracts the MIME type from a "data:<type>;base64," URI.
func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, ";base64,")

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode strips the data URI prefix and decodes the payload.
func Decode(file string) ([]byte, error) {
	marker := ";base64,"

	idx := strings.Index(file, marker)
	if idx == -1 {
		return nil, ErrInvalidDataURI
	}

	decoded, err := base64.StdEncoding.DecodeString(file[idx+len(marker):])
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}

	return decoded, nil
}
