package devicestats

import (
	"context"

	"github.com/codetaro/SigfoxDecoder/internal/bitfield"
	"github.com/codetaro/SigfoxDecoder/internal/driver"
	"github.com/codetaro/SigfoxDecoder/internal/frame"
	"github.com/codetaro/SigfoxDecoder/internal/record"
)

const (
	frameBytes   = 12
	counterScale = 32
)

// field locates a counter inside a 16-bit little-endian window.
type field struct {
	offset    int
	bitOffset int
	bitLength int
}

var (
	uptimeWeeks        = field{offset: 0, bitOffset: 4, bitLength: 9}
	txCount            = field{offset: 1, bitOffset: 5, bitLength: 11}
	tripCount          = field{offset: 4, bitOffset: 0, bitLength: 13}
	gpsSuccessCount    = field{offset: 5, bitOffset: 5, bitLength: 10}
	gpsFailureCount    = field{offset: 6, bitOffset: 7, bitLength: 8}
	averageFixTime     = field{offset: 7, bitOffset: 7, bitLength: 9}
	averageFailTime    = field{offset: 9, bitOffset: 0, bitLength: 9}
	averageFreshenTime = field{offset: 10, bitOffset: 1, bitLength: 8}
)

const (
	offsetRxCount   = 3
	offsetWakeUps   = 11
	wakeUpsBitShift = 1
)

func init() {
	driver.Register(driver.Detection{Tag: record.TagDeviceStats}, Driver{})
}

// Driver decodes the periodic device statistics report.
type Driver struct{}

// Name returns the canonical driver name.
func (Driver) Name() string { return record.TagDeviceStats.String() }

// Process extracts every counter independently; no field depends on another.
func (Driver) Process(_ context.Context, f *frame.Frame) (record.Record, error) {
	if err := f.Require("device_stats", frameBytes); err != nil {
		return nil, err
	}
	raw := f.Raw
	return &record.DeviceStats{
		UptimeWeeks:               read(raw, uptimeWeeks),
		TxCount:                   read(raw, txCount) * counterScale,
		RxCount:                   int(raw[offsetRxCount]) * counterScale,
		TripCount:                 read(raw, tripCount),
		GpsSuccessCount:           read(raw, gpsSuccessCount) * counterScale,
		GpsFailureCount:           read(raw, gpsFailureCount) * counterScale,
		AverageFixTimeSeconds:     read(raw, averageFixTime),
		AverageFailTimeSeconds:    read(raw, averageFailTime),
		AverageFreshenTimeSeconds: read(raw, averageFreshenTime),
		WakeUpsPerTrip:            int(raw[offsetWakeUps] >> wakeUpsBitShift),
	}, nil
}

func read(raw []byte, fd field) int {
	return int(bitfield.LE16Bits(raw, fd.offset, fd.bitOffset, fd.bitLength))
}
