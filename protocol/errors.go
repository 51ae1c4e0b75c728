package protocol

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every operation in the module. The kinds are
// independent of any session state, so they live here as a flat taxonomy
// rather than being scoped to a type. Match them with errors.Is.
var (
	// ErrInvalidParameter indicates a non-positive timeout or wait value was
	// supplied while error suppression is disabled.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidInput indicates malformed codec input, such as a byte
	// sequence too short for checksum calculation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates the byte codec was given a value it
	// cannot convert.
	ErrUnsupportedType = errors.New("unsupported input type")

	// ErrChecksumMismatch indicates a reply checksum disagrees with the
	// computed checksum. Never suppressed: a corrupted frame must not be
	// accepted as valid data.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrNoResponse indicates the retry budget was exhausted without a reply
	// while error suppression is disabled.
	ErrNoResponse = errors.New("no response from sensor")

	// ErrNotImplemented indicates an operation whose wire command is not yet
	// defined by the protocol.
	ErrNotImplemented = errors.New("command not implemented by the protocol")
)

// ChecksumError reports a reply whose trailing checksum byte does not match
// the checksum computed over the frame body.
type ChecksumError struct {
	// Expected is the checksum computed over the frame body
	Expected byte

	// Actual is the checksum byte carried by the frame
	Actual byte

	// Response is the offending frame
	Response []byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch: computed 0x%02X, frame carries 0x%02X (response % X)",
		e.Expected, e.Actual, e.Response)
}

// Unwrap makes errors.Is(err, ErrChecksumMismatch) work on *ChecksumError.
func (e *ChecksumError) Unwrap() error {
	return ErrChecksumMismatch
}
