package sigfox

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

const sydneyFix = "3043d0d0ebe6641e5a0000d5"

func TestDecodePositional(t *testing.T) {
	rec, err := Decode(sydneyFix)
	require.NoError(t, err)
	pos, ok := rec.(*Positional)
	require.True(t, ok, "unexpected record type %T", rec)
	require.Equal(t, TagPositional, pos.Tag())
	// 0x30: bit 4 (in trip) and bit 5 (last fix failed) are both set.
	require.True(t, pos.InTrip)
	require.True(t, pos.LastFixFailed)
	require.InDelta(t, float64(int32(-338636733))*1e-7, pos.Latitude, 1e-12)
	require.InDelta(t, float64(int32(0x5a1e64e6))*1e-7, pos.Longitude, 1e-12)
	require.Equal(t, 0, pos.Heading)
	require.Equal(t, 0, pos.SpeedKmH)
	require.InDelta(t, 5.325, pos.BatteryVoltage, 1e-12)
}

func TestDecodeNoResult(t *testing.T) {
	for _, input := range []string{"", " ", "\t\n", "0x", "3"} {
		t.Run(strings.TrimSpace(input), func(t *testing.T) {
			rec, err := Decode(input)
			require.NoError(t, err)
			require.Nil(t, rec)
		})
	}
}

func TestDecodeUnrecognizedTag(t *testing.T) {
	for _, input := range []string{"33", "3343d0d0ebe6641e5a0000d5", "0f", "f3ffffffff", "0x0e00"} {
		t.Run(input, func(t *testing.T) {
			rec, err := Decode(input)
			require.NoError(t, err)
			require.Nil(t, rec)
		})
	}
}

func TestDecodePrefixEquivalence(t *testing.T) {
	for _, hex := range []string{sydneyFix, "2253e10a4c2ea1583c190e14", "11000207a1b2c3d4e5f60718"} {
		plain, err := Decode(hex)
		require.NoError(t, err)
		prefixed, err := Decode("0x" + hex)
		require.NoError(t, err)
		require.Equal(t, plain, prefixed)
		upper, err := Decode(strings.ToUpper(hex))
		require.NoError(t, err)
		require.Equal(t, plain, upper)
	}
}

func TestDecodeOddLength(t *testing.T) {
	rec, err := Decode(sydneyFix + "7")
	require.NoError(t, err)
	want, err := Decode(sydneyFix)
	require.NoError(t, err)
	require.Equal(t, want, rec)

	result, err := DecodeWithOptions(context.Background(), "0x"+sydneyFix+"7", Options{})
	require.NoError(t, err)
	require.Equal(t, 12, result.ByteCount)
	require.Equal(t, strings.ToUpper(sydneyFix), result.RawHex)

	// 23 digits leave 11 full bytes, one short of a positional record.
	_, err = Decode(sydneyFix[:23])
	require.ErrorIs(t, err, ErrTruncatedPayload)
}

func TestDecodeTruncated(t *testing.T) {
	cases := map[string]string{
		"positional":   "3043d0d0",
		"downlink ack": "11000207a1",
		"device stats": "2253e10a4c",
		"single byte":  "02",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			rec, err := Decode(input)
			require.ErrorIs(t, err, ErrTruncatedPayload)
			require.Nil(t, rec)
		})
	}
}

func TestDecodeMalformedHex(t *testing.T) {
	for _, input := range []string{"zz3043", "0X" + sydneyFix, "30 43d0d0ebe6641e5a0000d5"} {
		rec, err := Decode(input)
		require.ErrorIs(t, err, ErrMalformedHex, input)
		require.Nil(t, rec)
	}
}

func TestDecodeWithOptionsDownlinkData(t *testing.T) {
	ctx := context.Background()
	const ack = "11000207a1b2c3d4e5f60718"

	result, err := DecodeWithOptions(ctx, ack, Options{})
	require.NoError(t, err)
	require.Equal(t, [8]byte{0xa1, 0xb2, 0xc3, 0xd4, 0xe5, 0xf6, 0x07, 0x18}, result.Record.(*DownlinkAck).DownlinkData)

	result, err = DecodeWithOptions(ctx, ack, Options{DownlinkData: "sequence"})
	require.NoError(t, err)
	require.Equal(t, [8]byte{4, 5, 6, 7, 8, 9, 10, 11}, result.Record.(*DownlinkAck).DownlinkData)

	_, err = DecodeWithOptions(ctx, ack, Options{DownlinkData: "bogus"})
	require.ErrorIs(t, err, ErrInvalidOption)

	// Options are checked even when there is nothing to decode.
	_, err = DecodeWithOptions(ctx, "", Options{DownlinkData: "bogus"})
	require.ErrorIs(t, err, ErrInvalidOption)
	_, err = DecodeBytes(ctx, nil, Options{DownlinkData: "bogus"})
	require.ErrorIs(t, err, ErrInvalidOption)
}

func TestDecodeWithOptionsResult(t *testing.T) {
	result, err := DecodeWithOptions(context.Background(), " 0x"+sydneyFix+" ", Options{})
	require.NoError(t, err)
	require.Equal(t, "positional", result.Driver)
	require.Equal(t, strings.ToUpper(sydneyFix), result.RawHex)
	require.Equal(t, 12, result.ByteCount)
	require.Equal(t, TagPositional, result.Tag)
	require.Equal(t, 0, result.Fields["MessageType"])
	require.Contains(t, result.String(), `"driver": "positional"`)
	require.Contains(t, result.String(), `"tag": "positional"`)

	result, err = DecodeWithOptions(context.Background(), "33ff", Options{})
	require.NoError(t, err)
	require.Equal(t, "unknown", result.Driver)
	require.Equal(t, Tag(3), result.Tag)
	require.Nil(t, result.Record)
	require.Empty(t, result.Fields)
	require.Contains(t, result.String(), `"tag": "unknown(3)"`)
}

func TestDecodeBytes(t *testing.T) {
	result, err := DecodeBytes(context.Background(), []byte{0x02, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x14}, Options{})
	require.NoError(t, err)
	require.Equal(t, "device_stats", result.Driver)
	require.Equal(t, "020000000000000000000014", strings.ToLower(result.RawHex))
	require.Equal(t, 10, result.Record.(*DeviceStats).WakeUpsPerTrip)

	result, err = DecodeBytes(context.Background(), nil, Options{})
	require.NoError(t, err)
	require.Nil(t, result.Record)
	require.Equal(t, 0, result.ByteCount)
}

func TestDecodeRecordSwitch(t *testing.T) {
	inputs := map[string]Tag{
		sydneyFix:                  TagPositional,
		"11000207a1b2c3d4e5f60718": TagDownlinkAck,
		"2253e10a4c2ea1583c190e14": TagDeviceStats,
	}
	for input, want := range inputs {
		rec, err := Decode(input)
		require.NoError(t, err)
		var got Tag
		switch r := rec.(type) {
		case *Positional:
			got = r.Tag()
		case *DownlinkAck:
			got = r.Tag()
		case *DeviceStats:
			got = r.Tag()
		default:
			t.Fatalf("unexpected record %T", rec)
		}
		require.Equal(t, want, got)
	}
}

func TestDecodeConcurrent(t *testing.T) {
	inputs := []string{sydneyFix, "11000207a1b2c3d4e5f60718", "2253e10a4c2ea1583c190e14", "33", ""}
	want := make([]Record, len(inputs))
	for i, input := range inputs {
		rec, err := Decode(input)
		require.NoError(t, err)
		want[i] = rec
	}

	var wg sync.WaitGroup
	errs := make(chan error, 64*len(inputs))
	for g := 0; g < 64; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, input := range inputs {
				rec, err := Decode(input)
				if err != nil {
					errs <- err
					continue
				}
				if !sameRecord(want[i], rec) {
					errs <- errMismatch
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestDecodeLogging(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	opts := Options{Logger: logger}

	_, err := DecodeWithOptions(context.Background(), sydneyFix, opts)
	require.NoError(t, err)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, "decoded record", entry.Message)
	require.Equal(t, "positional", entry.Data["driver"])

	_, err = DecodeWithOptions(context.Background(), "3f", opts)
	require.NoError(t, err)
	entry = hook.LastEntry()
	require.Equal(t, "unrecognized record tag", entry.Message)
	require.Equal(t, uint8(15), entry.Data["tag"])
}

var errMismatch = errors.New("concurrent decode mismatch")

func sameRecord(a, b Record) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return diffMaps(a.Fields(), b.Fields()) == ""
}
