// Package protocol implements the serial wire protocol of the PS1-XX-XX-MOD
// family of gas sensor modules.
//
// This package provides functions to build command frames and decode the
// fixed-size response frames the sensor returns over its UART interface.
//
// # Protocol Overview
//
// Commands are sent as framed byte sequences:
//
//	[0xFF][0x01][CMD...][PAYLOAD...][0x00][0x00][0x00][0x00][CHECKSUM]
//
// Responses come back as fixed-size frames of 2, 9 or 13 bytes depending on
// the command. Checksummed replies carry a single trailing checksum byte
// computed over every byte except the first.
//
// The checksum is the two's complement of the modulo-256 sum of the covered
// bytes: sum, invert, add one.
//
// # Command Builders
//
// Use BuildCommandFrame or BuildQueryFrame to create command frames:
//
//	frame, err := protocol.BuildQueryFrame(protocol.CmdGasConcentration)
//	frame, err := protocol.BuildCommandFrame(protocol.Int(protocol.CmdUploadMode), protocol.Bytes([]byte{protocol.PayloadActiveUpload}))
//
// # Response Parsers
//
// Use the Parse* functions to validate and decode reply frames:
//
//	m, err := protocol.ParseConcentrationResponse(reply)
//	info, err := protocol.ParseSensorInfoResponse(reply)
//
// Checksummed parsers verify the trailing checksum and return a
// *ChecksumError (wrapping ErrChecksumMismatch) when it disagrees; a
// corrupted frame is never decoded silently.
//
// # Error Handling
//
// All fallible operations return errors from a flat taxonomy shared by the
// whole module: ErrInvalidParameter, ErrInvalidInput, ErrUnsupportedType,
// ErrChecksumMismatch, ErrNoResponse and ErrNotImplemented. Match them with
// errors.Is.
package protocol
