package protocol

import "encoding/binary"

// Field extractors decode fixed-offset windows of a reply frame. They are
// pure functions; callers hand them exactly the documented two-byte (or
// single-byte) windows after validating the frame length.

// ExtractRange decodes a big-endian 16-bit range field.
func ExtractRange(b []byte) uint16 {
	return binary.BigEndian.Uint16(b)
}

// ExtractGasConcentration decodes a big-endian 16-bit concentration field.
// Same packing as ExtractRange, named separately for clarity of intent.
func ExtractGasConcentration(b []byte) uint16 {
	return binary.BigEndian.Uint16(b)
}

// ExtractTemperature decodes a two-decimal fixed-point temperature field:
// big-endian u16 divided by 100.
func ExtractTemperature(b []byte) float64 {
	return float64(binary.BigEndian.Uint16(b)) / 100
}

// ExtractHumidity decodes a two-decimal fixed-point humidity field:
// big-endian u16 divided by 100.
func ExtractHumidity(b []byte) float64 {
	return float64(binary.BigEndian.Uint16(b)) / 100
}

// ParseUnit maps a unit code byte to its measurement unit pair. Unknown
// codes return nil; that is absence, not an error, and callers must handle
// it.
func ParseUnit(code byte) *UnitPair {
	switch code {
	case UnitCodePPM:
		return &UnitPair{Primary: "ppm", Secondary: "mg/m³"}
	case UnitCodePPB:
		return &UnitPair{Primary: "ppb", Secondary: "µg/m³"}
	case UnitCodePercent:
		return &UnitPair{Primary: "10g/m³", Secondary: "%"}
	default:
		return nil
	}
}

// DecimalPlaces extracts the decimal-place count from the combined
// sign/decimal byte. Per the wire convention the byte is read bit-reversed
// and bits 4-7 of the reversed order are repacked as a 4-bit integer, which
// resolves to the high nibble of the original byte.
func DecimalPlaces(b byte) byte {
	return b >> 4
}

// DataSign extracts the data-sign nibble from the combined sign/decimal
// byte: the complementary low nibble of the same byte, with the same
// bit-reversal convention as DecimalPlaces. 0 means positive, 1 negative;
// higher values are reserved.
func DataSign(b byte) byte {
	return b & 0x0F
}
