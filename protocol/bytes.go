package protocol

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// valueKind tags the variants of Value.
type valueKind int

const (
	kindNone valueKind = iota
	kindInt
	kindText
	kindBytes
)

// Value is the closed set of scalar inputs the byte codec accepts: an
// integer, a text string or a raw byte sequence. The zero Value is not
// encodable and fails with ErrUnsupportedType.
type Value struct {
	kind valueKind
	num  uint64
	text string
	raw  []byte
}

// Int wraps an unsigned integer for encoding.
func Int(v uint64) Value {
	return Value{kind: kindInt, num: v}
}

// Text wraps a string for encoding. Strings are interpreted as hexadecimal
// first, then as binary literals with a "0b" prefix, then as UTF-8 text.
func Text(s string) Value {
	return Value{kind: kindText, text: s}
}

// Bytes wraps a raw byte sequence; encoding returns it unchanged.
func Bytes(b []byte) Value {
	return Value{kind: kindBytes, raw: b}
}

// IsBytesCompatible reports whether the value may appear in a command frame.
// Only integers and byte sequences are legal on the wire.
func (v Value) IsBytesCompatible() bool {
	return v.kind == kindInt || v.kind == kindBytes
}

// Encode converts the value into its canonical byte sequence.
//
// Integers encode big-endian using the minimal number of whole bytes, with a
// minimum of one byte. Strings first attempt a hexadecimal decode (the whole
// string must be an even-length run of hex digits); a string that happens to
// be valid hex, such as "41", is always taken as hex bytes, never as text.
// Failing that, a "0b" prefix selects a base-2 integer parse followed by the
// minimal big-endian encoding, and anything else becomes UTF-8 text bytes.
// Byte sequences pass through unchanged.
func (v Value) Encode() ([]byte, error) {
	switch v.kind {
	case kindInt:
		return encodeUint(v.num), nil

	case kindText:
		if decoded, err := hex.DecodeString(v.text); err == nil {
			return decoded, nil
		}
		if strings.HasPrefix(v.text, "0b") {
			n, err := strconv.ParseUint(v.text[2:], 2, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid binary literal %q", ErrUnsupportedType, v.text)
			}
			return encodeUint(n), nil
		}
		return []byte(v.text), nil

	case kindBytes:
		return v.raw, nil

	default:
		return nil, fmt.Errorf("%w: value must be an integer, string or byte sequence", ErrUnsupportedType)
	}
}

// encodeUint returns the minimal-length big-endian encoding of n, at least
// one byte long.
func encodeUint(n uint64) []byte {
	size := 1
	for v := n; v > 0xFF; v >>= 8 {
		size++
	}
	out := make([]byte, size)
	for i := size - 1; i >= 0; i-- {
		out[i] = byte(n)
		n >>= 8
	}
	return out
}
