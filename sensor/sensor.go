package sensor

import (
	"fmt"
	"time"

	"github.com/gassense/go-ps1mod/protocol"
)

// Sensor is a session with one PS1-XX-XX-MOD module over a Transport. It
// exposes the sensor's operations: upload-mode switches, info queries,
// measurement reads, light control and sleep control.
//
// A Sensor owns its Transport exclusively for the session lifetime and is
// strictly synchronous: every operation performs at most one transport round
// trip and returns before control is handed back. It is not safe for
// concurrent use.
type Sensor struct {
	transport Transport
	config    Config
}

// New creates a session over the given transport.
//
// Example:
//
//	port, _ := serialport.Open("/dev/ttyUSB0", nil)
//	dev := sensor.New(port,
//	    sensor.WithAttempts(5),
//	    sensor.WithReadTimeout(2*time.Second),
//	)
func New(transport Transport, opts ...Option) *Sensor {
	if transport == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Sensor{
		transport: transport,
		config:    cfg,
	}
}

// SetActiveUpload switches the sensor to active upload mode, in which it
// pushes unsolicited measurement frames; collect them with ActiveReading.
// Fire-and-forget: no reply is expected and send failures are absorbed
// unless strict errors are enabled.
func (s *Sensor) SetActiveUpload() error {
	return s.setUploadMode(protocol.PayloadActiveUpload)
}

// SetPassiveUpload switches the sensor to passive upload mode, in which it
// only answers explicit queries. Fire-and-forget like SetActiveUpload.
func (s *Sensor) SetPassiveUpload() error {
	return s.setUploadMode(protocol.PayloadPassiveUpload)
}

func (s *Sensor) setUploadMode(mode byte) error {
	frame, err := protocol.BuildCommandFrame(
		protocol.Int(protocol.CmdUploadMode),
		protocol.Bytes([]byte{mode}),
	)
	if err != nil {
		return err
	}

	if err := s.transport.ClearInput(); err != nil && !s.config.SuppressErrors {
		return fmt.Errorf("clear input buffer: %w", err)
	}
	_, err = s.send(request{frame: frame})
	return err
}

// SensorInfo queries device metadata: sensor type, maximum range, unit code
// and the sign/decimal-places convention. The command is a bare single byte
// with no frame or outbound checksum; the reply is a 9-byte checksummed
// frame in the legacy layout.
//
// Returns (nil, nil) when the reply is absent or short. A checksum mismatch
// always surfaces as an error.
func (s *Sensor) SensorInfo() (*protocol.SensorInfo, error) {
	return s.sensorInfo(protocol.CmdSensorInfo, protocol.ParseSensorInfoResponse)
}

// SensorInfoAlt queries the same device metadata through the alternate
// command, whose reply carries the fields at different offsets.
func (s *Sensor) SensorInfoAlt() (*protocol.SensorInfo, error) {
	return s.sensorInfo(protocol.CmdSensorInfoAlt, protocol.ParseSensorInfoAltResponse)
}

func (s *Sensor) sensorInfo(command byte, parse func([]byte) (*protocol.SensorInfo, error)) (*protocol.SensorInfo, error) {
	response, err := s.send(request{
		frame:          []byte{command},
		expectResponse: true,
		responseSize:   protocol.StandardResponseSize,
	})
	if err != nil {
		return nil, err
	}
	if len(response) != protocol.StandardResponseSize {
		return nil, nil
	}
	return parse(response)
}

// GasConcentration reads the current gas concentration: both concentration
// values and the full range.
//
// With includeUnits, a nested SensorInfo query resolves the unit labels and
// the reading carries them. When that inner query yields no usable unit the
// whole operation returns (nil, nil) even though the measurement itself
// decoded; callers that only want numbers should pass false.
func (s *Sensor) GasConcentration(includeUnits bool) (*protocol.Concentration, error) {
	frame, err := protocol.BuildQueryFrame(protocol.CmdGasConcentration)
	if err != nil {
		return nil, err
	}

	response, err := s.send(request{
		frame:          frame,
		expectResponse: true,
		responseSize:   protocol.StandardResponseSize,
	})
	if err != nil {
		return nil, err
	}
	if len(response) != protocol.StandardResponseSize {
		return nil, nil
	}

	reading, err := protocol.ParseConcentrationResponse(response)
	if err != nil {
		return nil, err
	}

	if includeUnits {
		unit, err := s.resolveUnit()
		if err != nil || unit == nil {
			return nil, err
		}
		reading.GasUnit1 = unit.Primary
		reading.GasUnit2 = unit.Secondary
	}
	return reading, nil
}

// ReadAll reads the full measurement set: gas concentrations, full range,
// temperature and humidity. The unit handling matches GasConcentration,
// including the absent result when units were requested but unresolved.
func (s *Sensor) ReadAll(includeUnits bool) (*protocol.Measurement, error) {
	frame, err := protocol.BuildQueryFrame(protocol.CmdReadAll)
	if err != nil {
		return nil, err
	}

	response, err := s.send(request{
		frame:          frame,
		expectResponse: true,
		responseSize:   protocol.ReadAllResponseSize,
	})
	if err != nil {
		return nil, err
	}
	if len(response) != protocol.ReadAllResponseSize {
		return nil, nil
	}

	measurement, err := protocol.ParseMeasurementResponse(response)
	if err != nil {
		return nil, err
	}

	if includeUnits {
		unit, err := s.resolveUnit()
		if err != nil || unit == nil {
			return nil, err
		}
		measurement.GasUnit1 = unit.Primary
		measurement.GasUnit2 = unit.Secondary
	}
	return measurement, nil
}

// resolveUnit runs the nested info query behind includeUnits. A nil pair
// with nil error means the sensor reported no recognized unit.
func (s *Sensor) resolveUnit() (*protocol.UnitPair, error) {
	info, err := s.SensorInfo()
	if err != nil {
		return nil, err
	}
	if info == nil || info.Unit == nil {
		return nil, nil
	}
	return info.Unit, nil
}

// TemperatureHumidity would read temperature and humidity on their own, but
// the wire command for it is not yet defined by the protocol.
func (s *Sensor) TemperatureHumidity() (temperature, humidity float64, err error) {
	return 0, 0, protocol.ErrNotImplemented
}

// TemperatureHumidityCalibrated would read calibrated temperature and
// humidity; the wire command for it is not yet defined by the protocol.
func (s *Sensor) TemperatureHumidityCalibrated() (temperature, humidity float64, err error) {
	return 0, 0, protocol.ErrNotImplemented
}

// EnterSleepMode puts the sensor to sleep using the legacy literal command.
// The sensor acknowledges with a 2-byte ASCII "ok"; acked reports whether
// that acknowledgement arrived.
func (s *Sensor) EnterSleepMode() (acked bool, err error) {
	response, err := s.send(request{
		frame:          protocol.SleepEnterSeq,
		expectResponse: true,
		responseSize:   protocol.AckResponseSize,
	})
	if err != nil {
		return false, err
	}
	return protocol.ParseAckResponse(response), nil
}

// ExitSleepMode wakes the sensor using the legacy literal command. With
// waitForRestore it blocks for the configured settle period (5 seconds by
// default) after sending, regardless of the reply content.
func (s *Sensor) ExitSleepMode(waitForRestore bool) (acked bool, err error) {
	response, err := s.send(request{
		frame:          protocol.SleepExitSeq,
		expectResponse: true,
		responseSize:   protocol.AckResponseSize,
	})
	if waitForRestore {
		time.Sleep(s.config.RestoreDelay)
	}
	if err != nil {
		return false, err
	}
	return protocol.ParseAckResponse(response), nil
}

// EnterSleepMode2 puts the sensor to sleep using the alternate command
// family, which answers with a full 9-byte checksummed frame instead of a
// text acknowledgement.
func (s *Sensor) EnterSleepMode2() (acked bool, err error) {
	return s.sleepCommand2(protocol.SleepEnterSeq2, false)
}

// ExitSleepMode2 wakes the sensor using the alternate command family, with
// the same optional settle wait as ExitSleepMode.
func (s *Sensor) ExitSleepMode2(waitForRestore bool) (acked bool, err error) {
	return s.sleepCommand2(protocol.SleepExitSeq2, waitForRestore)
}

func (s *Sensor) sleepCommand2(command []byte, waitForRestore bool) (bool, error) {
	response, err := s.send(request{
		frame:          command,
		expectResponse: true,
		responseSize:   protocol.StandardResponseSize,
	})
	if waitForRestore {
		time.Sleep(s.config.RestoreDelay)
	}
	if err != nil {
		return false, err
	}
	if len(response) != protocol.StandardResponseSize {
		return false, nil
	}
	if err := protocol.VerifyFrame(response); err != nil {
		return false, err
	}
	return true, nil
}

// TurnOnLight turns the sensor's light on. The sensor acknowledges with a
// 2-byte ASCII "ok".
func (s *Sensor) TurnOnLight() (acked bool, err error) {
	return s.lightCommand(protocol.CmdLightOn)
}

// TurnOffLight turns the sensor's light off.
func (s *Sensor) TurnOffLight() (acked bool, err error) {
	return s.lightCommand(protocol.CmdLightOff)
}

func (s *Sensor) lightCommand(command byte) (bool, error) {
	frame, err := protocol.BuildQueryFrame(command)
	if err != nil {
		return false, err
	}

	response, err := s.send(request{
		frame:          frame,
		expectResponse: true,
		responseSize:   protocol.AckResponseSize,
	})
	if err != nil {
		return false, err
	}
	return protocol.ParseAckResponse(response), nil
}

// QueryLightStatus reports whether the sensor's light is on. ok is false
// when the sensor did not answer, in which case on is meaningless.
func (s *Sensor) QueryLightStatus() (on, ok bool, err error) {
	frame, err := protocol.BuildQueryFrame(protocol.CmdLightStatus)
	if err != nil {
		return false, false, err
	}

	response, err := s.send(request{
		frame:          frame,
		expectResponse: true,
		responseSize:   protocol.StandardResponseSize,
	})
	if err != nil {
		return false, false, err
	}
	if len(response) != protocol.StandardResponseSize {
		return false, false, nil
	}

	on, err = protocol.ParseLightStatusResponse(response)
	if err != nil {
		return false, false, err
	}
	return on, true, nil
}

// ActiveReading collects one unsolicited push frame in active upload mode.
// It never blocks waiting for data: the read is only attempted when the
// transport already has buffered input, so it is safe to call in a tight
// poll loop. Returns (nil, nil) when nothing is buffered or the frame is
// short.
func (s *Sensor) ActiveReading() (*protocol.Concentration, error) {
	if s.transport.BytesAvailable() == 0 {
		return nil, nil
	}

	response, err := s.transport.Read(protocol.StandardResponseSize)
	if err != nil {
		if !s.config.SuppressErrors {
			return nil, fmt.Errorf("read push frame: %w", err)
		}
		return nil, nil
	}
	if len(response) != protocol.StandardResponseSize {
		return nil, nil
	}
	return protocol.ParseConcentrationResponse(response)
}

// Close releases the underlying transport.
func (s *Sensor) Close() error {
	return s.transport.Close()
}

// logDebug logs a debug message if a logger is configured.
func (s *Sensor) logDebug(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (s *Sensor) logError(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Error(msg, keysAndValues...)
	}
}
