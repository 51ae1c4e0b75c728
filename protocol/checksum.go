package protocol

import "fmt"

// Checksum computes the single-byte checksum used on every frame.
//
// The covered range starts at index 0 when includeFirst is true, otherwise at
// index 1. A positive length extends the range that many bytes from its
// start, clamped to the end of data; a negative length ends the range that
// many bytes before the end of data; zero runs to the end. The selected
// bytes are summed modulo 256, bit-inverted and incremented by one.
//
// Returns ErrInvalidInput when data carries fewer than MinChecksumInput bytes.
func Checksum(data []byte, includeFirst bool, length int) (byte, error) {
	if len(data) < MinChecksumInput {
		return 0, fmt.Errorf("%w: need at least %d bytes for checksum calculation, got %d",
			ErrInvalidInput, MinChecksumInput, len(data))
	}

	start := 1
	if includeFirst {
		start = 0
	}

	end := len(data)
	switch {
	case length > 0:
		if start+length < end {
			end = start + length
		}
	case length < 0:
		end += length
		if end < start {
			end = start
		}
	}

	var sum byte
	for _, b := range data[start:end] {
		sum += b
	}
	// Two's complement: invert and add 1.
	return ^sum + 1, nil
}

// VerifyResponseChecksum recomputes the checksum of a reply frame over every
// byte except the last and compares it to the last byte.
//
// Returns ErrInvalidInput when the response is empty.
func VerifyResponseChecksum(response []byte, includeFirst bool) (bool, error) {
	if len(response) < 1 {
		return false, fmt.Errorf("%w: response must contain at least 1 byte to verify the checksum",
			ErrInvalidInput)
	}

	want := response[len(response)-1]
	got, err := Checksum(response[:len(response)-1], includeFirst, 0)
	if err != nil {
		return false, err
	}
	return got == want, nil
}

// VerifyFrame checks the trailing checksum of a reply frame and converts a
// disagreement into a *ChecksumError carrying the frame.
func VerifyFrame(frame []byte) error {
	ok, err := VerifyResponseChecksum(frame, false)
	if err != nil {
		return err
	}
	if !ok {
		computed, _ := Checksum(frame[:len(frame)-1], false, 0)
		return &ChecksumError{
			Expected: computed,
			Actual:   frame[len(frame)-1],
			Response: frame,
		}
	}
	return nil
}
