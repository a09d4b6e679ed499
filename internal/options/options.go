package options

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidOption reports an unsupported option value.
var ErrInvalidOption = errors.New("invalid decode option")

// DownlinkDataMode selects how the DownlinkData field of an acknowledgement
// is filled.
type DownlinkDataMode int

const (
	// DownlinkDataPayload copies payload bytes 4..11.
	DownlinkDataPayload DownlinkDataMode = iota
	// DownlinkDataSequence emits the constant sequence 4..11 the legacy
	// decoder produced regardless of the payload.
	DownlinkDataSequence
)

func (m DownlinkDataMode) String() string {
	switch m {
	case DownlinkDataPayload:
		return "payload"
	case DownlinkDataSequence:
		return "sequence"
	default:
		return fmt.Sprintf("DownlinkDataMode(%d)", int(m))
	}
}

type contextKey struct{}

// WithDownlinkDataMode stores the mode inside the context.
func WithDownlinkDataMode(ctx context.Context, mode DownlinkDataMode) context.Context {
	return context.WithValue(ctx, contextKey{}, mode)
}

// DownlinkData retrieves the mode from context, defaulting to
// DownlinkDataPayload.
func DownlinkData(ctx context.Context) DownlinkDataMode {
	if v := ctx.Value(contextKey{}); v != nil {
		if mode, ok := v.(DownlinkDataMode); ok {
			return mode
		}
	}
	return DownlinkDataPayload
}

// ParseDownlinkDataMode accepts "payload" or "sequence" in any case. A blank
// string selects the default.
func ParseDownlinkDataMode(input string) (DownlinkDataMode, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "payload":
		return DownlinkDataPayload, nil
	case "sequence":
		return DownlinkDataSequence, nil
	default:
		return 0, fmt.Errorf("%w: downlink data mode %q (want payload or sequence)", ErrInvalidOption, input)
	}
}
