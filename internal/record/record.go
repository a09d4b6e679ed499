package record

import "fmt"

// Tag is the record selector carried in the low nibble of the first byte.
type Tag uint8

// Record tags understood by the decoder.
const (
	TagPositional  Tag = 0
	TagDownlinkAck Tag = 1
	TagDeviceStats Tag = 2
)

// String names the record kind, or unknown(N) for other tags.
func (t Tag) String() string {
	switch t {
	case TagPositional:
		return "positional"
	case TagDownlinkAck:
		return "downlink_ack"
	case TagDeviceStats:
		return "device_stats"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Record is one decoded telemetry message. It is implemented only by
// *Positional, *DownlinkAck and *DeviceStats.
type Record interface {
	Tag() Tag
	// Fields flattens the record into the key set used by the device
	// documentation, MessageType included.
	Fields() map[string]any
	sealed()
}

// Positional is a GPS fix report (tag 0).
type Positional struct {
	InTrip         bool    `json:"InTrip" yaml:"InTrip"`
	LastFixFailed  bool    `json:"LastFixFailed" yaml:"LastFixFailed"`
	Latitude       float64 `json:"Latitude" yaml:"Latitude"`
	Longitude      float64 `json:"Longitude" yaml:"Longitude"`
	Heading        int     `json:"Heading" yaml:"Heading"`
	SpeedKmH       int     `json:"SpeedKmH" yaml:"SpeedKmH"`
	BatteryVoltage float64 `json:"BatteryVoltage" yaml:"BatteryVoltage"`
}

func (*Positional) Tag() Tag { return TagPositional }
func (*Positional) sealed()  {}

// Fields returns the fix as a flat key map.
func (p *Positional) Fields() map[string]any {
	return map[string]any{
		"MessageType":    int(TagPositional),
		"InTrip":         p.InTrip,
		"LastFixFailed":  p.LastFixFailed,
		"Latitude":       p.Latitude,
		"Longitude":      p.Longitude,
		"Heading":        p.Heading,
		"SpeedKmH":       p.SpeedKmH,
		"BatteryVoltage": p.BatteryVoltage,
	}
}

// DownlinkAck confirms reception of a downlink frame (tag 1).
type DownlinkAck struct {
	DownlinkAccepted bool    `json:"DownlinkAccepted" yaml:"DownlinkAccepted"`
	FirmwareVersion  string  `json:"FirmWareVersion" yaml:"FirmWareVersion"`
	DownlinkData     [8]byte `json:"DownlinkData" yaml:"DownlinkData"`
}

func (*DownlinkAck) Tag() Tag { return TagDownlinkAck }
func (*DownlinkAck) sealed()  {}

// Fields returns the acknowledgement as a flat key map.
func (d *DownlinkAck) Fields() map[string]any {
	return map[string]any{
		"MessageType":      int(TagDownlinkAck),
		"DownlinkAccepted": d.DownlinkAccepted,
		"FirmWareVersion":  d.FirmwareVersion,
		"DownlinkData":     d.DownlinkData,
	}
}

// DeviceStats carries the operational counters (tag 2). Tx, Rx and GPS
// counters have a granularity of 32.
type DeviceStats struct {
	UptimeWeeks               int `json:"UptimeWeeks" yaml:"UptimeWeeks"`
	TxCount                   int `json:"TxCount" yaml:"TxCount"`
	RxCount                   int `json:"RxCount" yaml:"RxCount"`
	TripCount                 int `json:"TripCount" yaml:"TripCount"`
	GpsSuccessCount           int `json:"GpsSuccessCount" yaml:"GpsSuccessCount"`
	GpsFailureCount           int `json:"GpsFailureCount" yaml:"GpsFailureCount"`
	AverageFixTimeSeconds     int `json:"AverageFixTimeSeconds" yaml:"AverageFixTimeSeconds"`
	AverageFailTimeSeconds    int `json:"AverageFailTimeSeconds" yaml:"AverageFailTimeSeconds"`
	AverageFreshenTimeSeconds int `json:"AverageFreshenTimeSeconds" yaml:"AverageFreshenTimeSeconds"`
	WakeUpsPerTrip            int `json:"WakeUpsPerTrip" yaml:"WakeUpsPerTrip"`
}

func (*DeviceStats) Tag() Tag { return TagDeviceStats }
func (*DeviceStats) sealed()  {}

// Fields returns the counters as a flat key map.
func (s *DeviceStats) Fields() map[string]any {
	return map[string]any{
		"MessageType":               int(TagDeviceStats),
		"UptimeWeeks":               s.UptimeWeeks,
		"TxCount":                   s.TxCount,
		"RxCount":                   s.RxCount,
		"TripCount":                 s.TripCount,
		"GpsSuccessCount":           s.GpsSuccessCount,
		"GpsFailureCount":           s.GpsFailureCount,
		"AverageFixTimeSeconds":     s.AverageFixTimeSeconds,
		"AverageFailTimeSeconds":    s.AverageFailTimeSeconds,
		"AverageFreshenTimeSeconds": s.AverageFreshenTimeSeconds,
		"WakeUpsPerTrip":            s.WakeUpsPerTrip,
	}
}
