package downlink

import (
	"context"
	"fmt"

	"github.com/codetaro/SigfoxDecoder/internal/driver"
	"github.com/codetaro/SigfoxDecoder/internal/frame"
	"github.com/codetaro/SigfoxDecoder/internal/options"
	"github.com/codetaro/SigfoxDecoder/internal/record"
)

const (
	headerBytes      = 4
	frameBytes       = 12
	flagAccepted     = 0x10
	offsetFwMajor    = 2
	offsetFwMinor    = 3
	offsetDataWindow = 4
)

func init() {
	driver.Register(driver.Detection{Tag: record.TagDownlinkAck}, Driver{})
}

// Driver decodes downlink acknowledgements.
type Driver struct{}

// Name returns the canonical driver name.
func (Driver) Name() string { return record.TagDownlinkAck.String() }

// Process decodes the acknowledgement. The DownlinkData source follows the
// mode stored in ctx.
func (Driver) Process(ctx context.Context, f *frame.Frame) (record.Record, error) {
	mode := options.DownlinkData(ctx)
	need := frameBytes
	if mode == options.DownlinkDataSequence {
		need = headerBytes
	}
	if err := f.Require("downlink_ack", need); err != nil {
		return nil, err
	}
	ack := &record.DownlinkAck{
		DownlinkAccepted: f.Flag(flagAccepted),
		FirmwareVersion:  fmt.Sprintf("%d.%d", f.Raw[offsetFwMajor], f.Raw[offsetFwMinor]),
	}
	switch mode {
	case options.DownlinkDataSequence:
		for i := range ack.DownlinkData {
			ack.DownlinkData[i] = byte(offsetDataWindow + i)
		}
	case options.DownlinkDataPayload:
		copy(ack.DownlinkData[:], f.Raw[offsetDataWindow:frameBytes])
	default:
		return nil, fmt.Errorf("%w: downlink data mode %s", options.ErrInvalidOption, mode)
	}
	return ack, nil
}
