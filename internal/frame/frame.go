package frame

import (
	"errors"
	"fmt"

	"github.com/codetaro/SigfoxDecoder/internal/record"
)

// ErrTruncatedPayload reports a payload shorter than its record layout.
var ErrTruncatedPayload = errors.New("truncated payload")

const (
	tagMask   = 0x0F
	flagsMask = 0xF0
)

// Frame is a raw payload split into the header nibbles of byte 0.
type Frame struct {
	Raw   []byte
	Tag   record.Tag
	Flags byte
}

// Parse reads the record tag and the flag nibble from the first byte.
func Parse(raw []byte) (Frame, error) {
	if len(raw) == 0 {
		return Frame{}, fmt.Errorf("%w: empty frame", ErrTruncatedPayload)
	}
	return Frame{
		Raw:   raw,
		Tag:   record.Tag(raw[0] & tagMask),
		Flags: raw[0] & flagsMask,
	}, nil
}

// Require fails when the frame holds fewer than n bytes.
func (f Frame) Require(kind string, n int) error {
	if len(f.Raw) < n {
		return fmt.Errorf("%w: %s record needs %d bytes, got %d", ErrTruncatedPayload, kind, n, len(f.Raw))
	}
	return nil
}

// Flag reports whether every bit of mask is set in the flag nibble.
func (f Frame) Flag(mask byte) bool {
	return f.Flags&mask == mask
}
