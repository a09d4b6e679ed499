package positional

import (
	"context"

	"github.com/codetaro/SigfoxDecoder/internal/bitfield"
	"github.com/codetaro/SigfoxDecoder/internal/driver"
	"github.com/codetaro/SigfoxDecoder/internal/frame"
	"github.com/codetaro/SigfoxDecoder/internal/record"
)

const (
	frameBytes        = 12
	flagInTrip        = 0x10
	flagLastFixFailed = 0x20
	coordinateScale   = 1e-7
	headingScale      = 2
	batteryMillivolts = 25
)

const (
	offsetLatitude  = 1
	offsetLongitude = 5
	offsetHeading   = 9
	offsetSpeed     = 10
	offsetBattery   = 11
)

func init() {
	driver.Register(driver.Detection{Tag: record.TagPositional}, Driver{})
}

// Driver decodes GPS fix reports.
type Driver struct{}

// Name returns the canonical driver name.
func (Driver) Name() string { return record.TagPositional.String() }

// Process decodes the fix. Coordinates are signed fixed-point degrees.
func (Driver) Process(_ context.Context, f *frame.Frame) (record.Record, error) {
	if err := f.Require("positional", frameBytes); err != nil {
		return nil, err
	}
	raw := f.Raw
	return &record.Positional{
		InTrip:         f.Flag(flagInTrip),
		LastFixFailed:  f.Flag(flagLastFixFailed),
		Latitude:       float64(bitfield.LE32(raw, offsetLatitude)) * coordinateScale,
		Longitude:      float64(bitfield.LE32(raw, offsetLongitude)) * coordinateScale,
		Heading:        int(raw[offsetHeading]) * headingScale,
		SpeedKmH:       int(raw[offsetSpeed]),
		BatteryVoltage: float64(int(raw[offsetBattery])*batteryMillivolts) / 1000.0,
	}, nil
}
