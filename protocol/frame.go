package protocol

import "fmt"

// BuildCommandFrame assembles a complete outbound command frame:
//
//	[0xFF][0x01][CMD...][PAYLOAD...][0x00][0x00][0x00][0x00][CHECKSUM]
//
// The command and payload are encoded through the byte codec and must be
// integers or byte sequences; text values fail with ErrUnsupportedType. The
// trailing checksum is computed over the assembled bytes excluding the
// leading 0xFF.
func BuildCommandFrame(command, payload Value) ([]byte, error) {
	if !command.IsBytesCompatible() {
		return nil, fmt.Errorf("%w: command must be an integer or byte sequence", ErrUnsupportedType)
	}
	if !payload.IsBytesCompatible() {
		return nil, fmt.Errorf("%w: payload must be an integer or byte sequence", ErrUnsupportedType)
	}

	commandBytes, err := command.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode command: %w", err)
	}
	payloadBytes, err := payload.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	frame := make([]byte, 0, 2+len(commandBytes)+len(payloadBytes)+FrameTrailerSize+1)
	frame = append(frame, FrameStart, FrameAddress)
	frame = append(frame, commandBytes...)
	frame = append(frame, payloadBytes...)
	frame = append(frame, make([]byte, FrameTrailerSize)...)

	checksum, err := Checksum(frame, false, 0)
	if err != nil {
		return nil, err
	}
	return append(frame, checksum), nil
}

// BuildQueryFrame builds the common single-byte-command frame with the
// default single zero payload byte. BuildQueryFrame(CmdGasConcentration)
// yields FF 01 86 00 00 00 00 00 79.
func BuildQueryFrame(command byte) ([]byte, error) {
	return BuildCommandFrame(Int(uint64(command)), Bytes([]byte{0x00}))
}
