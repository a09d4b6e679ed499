package driver

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/codetaro/SigfoxDecoder/internal/frame"
	"github.com/codetaro/SigfoxDecoder/internal/record"
)

// ErrNoDriver reports a record tag no driver is registered for.
var ErrNoDriver = errors.New("driver not found")

// Detection contains the information required to select a driver.
type Detection struct {
	Tag record.Tag
}

// Driver decodes the frames of one record type.
type Driver interface {
	Name() string
	Process(context.Context, *frame.Frame) (record.Record, error)
}

var (
	regMu    sync.RWMutex
	registry []registeredDriver
)

type registeredDriver struct {
	detect Detection
	driver Driver
}

// Register stores a driver/detection pair in memory.
func Register(det Detection, drv Driver) {
	regMu.Lock()
	defer regMu.Unlock()
	registry = append(registry, registeredDriver{detect: det, driver: drv})
}

// Lookup returns the first driver registered for the frame's tag.
func Lookup(f *frame.Frame) (Driver, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	for _, rd := range registry {
		if rd.detect.Tag == f.Tag {
			return rd.driver, nil
		}
	}
	return nil, fmt.Errorf("%w for record tag %d", ErrNoDriver, uint8(f.Tag))
}
