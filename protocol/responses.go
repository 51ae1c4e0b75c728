package protocol

import (
	"fmt"
	"strings"
)

// ParseSensorInfoResponse decodes a 9-byte sensor-info reply in the legacy
// layout used by the CmdSensorInfo command:
//
//	[TYPE][RANGE_H][RANGE_L][UNIT][-][-][-][SIGN/DECIMALS][CHECKSUM]
//
// The trailing checksum is verified before any field is decoded.
func ParseSensorInfoResponse(frame []byte) (*SensorInfo, error) {
	if len(frame) != StandardResponseSize {
		return nil, fmt.Errorf("sensor info reply must be %d bytes, got %d", StandardResponseSize, len(frame))
	}
	if err := VerifyFrame(frame); err != nil {
		return nil, err
	}

	return &SensorInfo{
		SensorType:    frame[0],
		MaximumRange:  ExtractRange(frame[1:3]),
		UnitCode:      frame[3],
		Unit:          ParseUnit(frame[3]),
		DataSign:      DataSign(frame[7]),
		DecimalPlaces: DecimalPlaces(frame[7]),
	}, nil
}

// ParseSensorInfoAltResponse decodes a 9-byte sensor-info reply in the
// alternate layout used by the CmdSensorInfoAlt command:
//
//	[-][-][TYPE][RANGE_H][RANGE_L][UNIT][SIGN/DECIMALS][-][CHECKSUM]
func ParseSensorInfoAltResponse(frame []byte) (*SensorInfo, error) {
	if len(frame) != StandardResponseSize {
		return nil, fmt.Errorf("sensor info reply must be %d bytes, got %d", StandardResponseSize, len(frame))
	}
	if err := VerifyFrame(frame); err != nil {
		return nil, err
	}

	return &SensorInfo{
		SensorType:    frame[2],
		MaximumRange:  ExtractRange(frame[3:5]),
		UnitCode:      frame[5],
		Unit:          ParseUnit(frame[5]),
		DataSign:      DataSign(frame[6]),
		DecimalPlaces: DecimalPlaces(frame[6]),
	}, nil
}

// ParseConcentrationResponse decodes a 9-byte concentration reply (or an
// unsolicited active-mode push frame, which uses the same layout):
//
//	[-][-][GC1_H][GC1_L][RANGE_H][RANGE_L][GC2_H][GC2_L][CHECKSUM]
func ParseConcentrationResponse(frame []byte) (*Concentration, error) {
	if len(frame) != StandardResponseSize {
		return nil, fmt.Errorf("concentration reply must be %d bytes, got %d", StandardResponseSize, len(frame))
	}
	if err := VerifyFrame(frame); err != nil {
		return nil, err
	}

	return &Concentration{
		GasConcentration1: ExtractGasConcentration(frame[2:4]),
		FullRange:         ExtractRange(frame[4:6]),
		GasConcentration2: ExtractGasConcentration(frame[6:8]),
	}, nil
}

// ParseMeasurementResponse decodes a 13-byte read-all reply:
//
//	[-][-][GC1_H][GC1_L][RANGE_H][RANGE_L][GC2_H][GC2_L][TEMP_H][TEMP_L][HUM_H][HUM_L][CHECKSUM]
func ParseMeasurementResponse(frame []byte) (*Measurement, error) {
	if len(frame) != ReadAllResponseSize {
		return nil, fmt.Errorf("read-all reply must be %d bytes, got %d", ReadAllResponseSize, len(frame))
	}
	if err := VerifyFrame(frame); err != nil {
		return nil, err
	}

	return &Measurement{
		Concentration: Concentration{
			GasConcentration1: ExtractGasConcentration(frame[2:4]),
			FullRange:         ExtractRange(frame[4:6]),
			GasConcentration2: ExtractGasConcentration(frame[6:8]),
		},
		Temperature: ExtractTemperature(frame[8:10]),
		Humidity:    ExtractHumidity(frame[10:12]),
	}, nil
}

// ParseAckResponse reports whether a 2-byte text reply acknowledges the
// command: ASCII, trimmed, compared case-insensitively to "ok".
func ParseAckResponse(frame []byte) bool {
	if len(frame) != AckResponseSize {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(string(frame)), "ok")
}

// ParseLightStatusResponse decodes a 9-byte light-status reply. The status
// byte at offset 2 is 0x01 when the light is on.
func ParseLightStatusResponse(frame []byte) (bool, error) {
	if len(frame) != StandardResponseSize {
		return false, fmt.Errorf("light status reply must be %d bytes, got %d", StandardResponseSize, len(frame))
	}
	if err := VerifyFrame(frame); err != nil {
		return false, err
	}
	return frame[2] == 0x01, nil
}
