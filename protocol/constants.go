package protocol

// Frame structure constants.
const (
	// FrameStart is the first header byte of every command frame (0xFF)
	FrameStart = 0xFF

	// FrameAddress is the second header byte, the fixed module address (0x01)
	FrameAddress = 0x01

	// FrameTrailerSize is the number of reserved zero bytes before the checksum
	FrameTrailerSize = 4

	// MinChecksumInput is the minimum byte-sequence length the checksum
	// algorithm accepts
	MinChecksumInput = 4
)

// Command codes.
const (
	// CmdUploadMode selects the measurement delivery mode; the payload byte
	// picks active (push) or passive (poll) upload
	CmdUploadMode = 0x78

	// CmdGasConcentration requests the current gas concentration reading
	CmdGasConcentration = 0x86

	// CmdReadAll requests concentration plus temperature and humidity
	CmdReadAll = 0x87

	// CmdLightOff turns the sensor's light off
	CmdLightOff = 0x88

	// CmdLightOn turns the sensor's light on
	CmdLightOn = 0x89

	// CmdLightStatus queries the light state
	CmdLightStatus = 0x8A

	// CmdSensorInfo requests device metadata in the legacy reply layout.
	// Sent as a bare single byte with no frame and no checksum.
	CmdSensorInfo = 0xD1

	// CmdSensorInfoAlt requests device metadata in the alternate reply layout.
	// Sent as a bare single byte with no frame and no checksum.
	CmdSensorInfoAlt = 0xD7
)

// Upload-mode payload bytes for CmdUploadMode.
const (
	// PayloadActiveUpload puts the sensor in active (unsolicited push) mode
	PayloadActiveUpload = 0x40

	// PayloadPassiveUpload puts the sensor in passive (request/response) mode
	PayloadPassiveUpload = 0x41
)

// Literal command sequences sent without framing or checksum.
var (
	// SleepEnterSeq is the legacy enter-sleep command: 0xAF followed by "Sleep"
	SleepEnterSeq = []byte{0xAF, 'S', 'l', 'e', 'e', 'p'}

	// SleepExitSeq is the legacy exit-sleep command: 0xAE followed by "Exit"
	SleepExitSeq = []byte{0xAE, 'E', 'x', 'i', 't'}

	// SleepEnterSeq2 is the alternate enter-sleep command: 0xA1 followed by "Sleep2"
	SleepEnterSeq2 = []byte{0xA1, 'S', 'l', 'e', 'e', 'p', '2'}

	// SleepExitSeq2 is the alternate exit-sleep command: 0xA2 followed by "Exit2"
	SleepExitSeq2 = []byte{0xA2, 'E', 'x', 'i', 't', '2'}
)

// Response sizes per command family.
const (
	// AckResponseSize is the size of the 2-byte ASCII "ok" acknowledgement
	AckResponseSize = 2

	// StandardResponseSize is the size of measurement, info, light-status and
	// alternate sleep replies
	StandardResponseSize = 9

	// ReadAllResponseSize is the size of the combined
	// concentration/temperature/humidity reply
	ReadAllResponseSize = 13
)

// Unit codes reported in sensor-info replies.
const (
	// UnitCodePPM selects ppm / mg/m³
	UnitCodePPM = 0x02

	// UnitCodePPB selects ppb / µg/m³
	UnitCodePPB = 0x04

	// UnitCodePercent selects 10g/m³ / %
	UnitCodePercent = 0x08
)
