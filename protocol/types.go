package protocol

// UnitPair is the pair of measurement units selected by a unit code: the
// primary unit for gas concentration 1 and the secondary unit for gas
// concentration 2.
type UnitPair struct {
	Primary   string
	Secondary string
}

// SensorInfo contains device metadata decoded from a sensor-info reply.
// Two wire layouts carry the same logical fields at different offsets; see
// ParseSensorInfoResponse and ParseSensorInfoAltResponse.
type SensorInfo struct {
	// SensorType identifies the gas the module measures
	SensorType byte

	// MaximumRange is the full-scale measurement range
	MaximumRange uint16

	// UnitCode is the raw unit byte from the wire
	UnitCode byte

	// Unit is the decoded unit pair, nil when UnitCode is unrecognized
	Unit *UnitPair

	// DataSign is the sign convention nibble: 0 positive, 1 negative
	DataSign byte

	// DecimalPlaces is the decimal-place count nibble (0..15)
	DecimalPlaces byte
}

// Concentration is a gas concentration reading from a 9-byte measurement
// reply or an unsolicited active-mode push frame.
type Concentration struct {
	GasConcentration1 uint16
	FullRange         uint16
	GasConcentration2 uint16

	// GasUnit1 and GasUnit2 are filled in only when the caller requested
	// units and the sensor reported a recognized unit code
	GasUnit1 string
	GasUnit2 string
}

// Measurement is the full reading from a 13-byte read-all reply:
// concentration plus temperature and humidity in two-decimal fixed point.
type Measurement struct {
	Concentration

	// Temperature in degrees Celsius
	Temperature float64

	// Humidity in percent relative humidity
	Humidity float64
}
