package payload

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedHex reports a non-hex digit in the payload string.
var ErrMalformedHex = errors.New("malformed hex payload")

const prefix = "0x"

// Decode converts a hex payload string into bytes. Surrounding whitespace
// and a single lowercase "0x" prefix are removed first. An empty string
// yields an empty slice. A trailing odd digit is dropped without being
// validated.
func Decode(input string) ([]byte, error) {
	clean := Normalize(input)
	if clean == "" {
		return []byte{}, nil
	}
	n := len(clean) / 2
	decoded := make([]byte, n)
	if _, err := hex.Decode(decoded, []byte(clean[:n*2])); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHex, err)
	}
	return decoded, nil
}

// Normalize returns the digits Decode works on: the trimmed input with the
// "0x" prefix removed.
func Normalize(input string) string {
	clean := strings.TrimSpace(input)
	return strings.TrimPrefix(clean, prefix)
}
