// Package bitfield reads little-endian integers and packed sub-byte counters
// from a payload. Callers must check the payload length before reading; the
// helpers index the buffer directly.
package bitfield

import "encoding/binary"

// LE16 composes buf[offset+1]<<8 | buf[offset].
func LE16(buf []byte, offset int) uint16 {
	return binary.LittleEndian.Uint16(buf[offset : offset+2])
}

// LE16Bits extracts bitLength bits starting at bitOffset from the 16-bit
// little-endian window at offset. Windows of neighbouring fields may
// overlap.
func LE16Bits(buf []byte, offset, bitOffset, bitLength int) uint16 {
	return (LE16(buf, offset) >> bitOffset) & Mask(bitLength)
}

// Mask returns the low bitLength bits set, for 0 < bitLength <= 16.
func Mask(bitLength int) uint16 {
	return 0xFFFF >> (16 - bitLength)
}

// LE32 reads four bytes as a little-endian two's-complement integer.
func LE32(buf []byte, offset int) int32 {
	return int32(binary.LittleEndian.Uint32(buf[offset : offset+4]))
}
