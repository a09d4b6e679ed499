// Package sigfox decodes the hex payloads reported by Sigfox GPS trackers
// into positional, downlink acknowledgement and device statistics records.
package sigfox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/codetaro/SigfoxDecoder/internal/driver"
	_ "github.com/codetaro/SigfoxDecoder/internal/driver/devicestats" // register driver
	_ "github.com/codetaro/SigfoxDecoder/internal/driver/downlink"    // register driver
	_ "github.com/codetaro/SigfoxDecoder/internal/driver/positional"  // register driver
	"github.com/codetaro/SigfoxDecoder/internal/frame"
	"github.com/codetaro/SigfoxDecoder/internal/options"
	"github.com/codetaro/SigfoxDecoder/internal/payload"
	"github.com/codetaro/SigfoxDecoder/internal/record"
)

type (
	// Record is implemented by *Positional, *DownlinkAck and *DeviceStats.
	Record      = record.Record
	Tag         = record.Tag
	Positional  = record.Positional
	DownlinkAck = record.DownlinkAck
	DeviceStats = record.DeviceStats
)

const (
	TagPositional  = record.TagPositional
	TagDownlinkAck = record.TagDownlinkAck
	TagDeviceStats = record.TagDeviceStats
)

var (
	ErrMalformedHex     = payload.ErrMalformedHex
	ErrTruncatedPayload = frame.ErrTruncatedPayload
	ErrInvalidOption    = options.ErrInvalidOption
)

const unknownDriver = "unknown"

// Result captures the outcome of DecodeWithOptions. Record is nil when the
// payload was empty or carried an unrecognized tag.
type Result struct {
	Driver    string
	RawHex    string
	ByteCount int
	Tag       Tag
	Record    Record
	Fields    map[string]any
}

// Summary returns the result as a plain map suitable for JSON or YAML
// encoding.
func (r Result) Summary() map[string]any {
	summary := map[string]any{
		"driver":     r.Driver,
		"byte_count": r.ByteCount,
		"raw_hex":    r.RawHex,
	}
	if r.ByteCount > 0 {
		summary["tag"] = r.Tag.String()
	}
	if len(r.Fields) > 0 {
		summary["fields"] = r.Fields
	}
	return summary
}

// String renders a human-readable representation of the result.
func (r Result) String() string {
	data, err := json.MarshalIndent(r.Summary(), "", "  ")
	if err != nil {
		return fmt.Sprintf("driver: %s bytes:%d raw:%s (marshal error: %v)", r.Driver, r.ByteCount, r.RawHex, err)
	}
	return string(data)
}

// Decode parses a hex payload with default options. A nil record and nil
// error mean there is nothing to decode: the input was blank or the record
// tag is not one of the known types.
func Decode(input string) (Record, error) {
	result, err := DecodeWithOptions(context.Background(), input, Options{})
	if err != nil {
		return nil, err
	}
	return result.Record, nil
}

// DecodeWithOptions parses a hex payload with custom options.
func DecodeWithOptions(ctx context.Context, input string, opts Options) (Result, error) {
	data, err := payload.Decode(input)
	if err != nil {
		return Result{}, err
	}
	return DecodeBytes(ctx, data, opts)
}

// DecodeBytes decodes an already converted payload. Options are validated
// before anything else, so an invalid option is reported even for an empty
// payload.
func DecodeBytes(ctx context.Context, data []byte, opts Options) (Result, error) {
	ctx, err := opts.toInternal(ctx)
	if err != nil {
		return Result{}, err
	}
	log := opts.logger()
	result := Result{
		Driver:    unknownDriver,
		RawHex:    fmt.Sprintf("%X", data),
		ByteCount: len(data),
	}
	if len(data) == 0 {
		log.Debug("empty payload, nothing to decode")
		return result, nil
	}
	f, err := frame.Parse(data)
	if err != nil {
		return Result{}, err
	}
	result.Tag = f.Tag

	drv, err := driver.Lookup(&f)
	if errors.Is(err, driver.ErrNoDriver) {
		log.WithFields(logrus.Fields{
			"tag":        uint8(f.Tag),
			"byte_count": len(data),
		}).Debug("unrecognized record tag")
		return result, nil
	}
	if err != nil {
		return Result{}, err
	}

	rec, err := drv.Process(ctx, &f)
	if err != nil {
		return Result{}, err
	}
	result.Driver = drv.Name()
	result.Record = rec
	result.Fields = rec.Fields()
	log.WithFields(logrus.Fields{
		"tag":        uint8(f.Tag),
		"driver":     drv.Name(),
		"byte_count": len(data),
	}).Debug("decoded record")
	return result, nil
}
