package sensor

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/gassense/go-ps1mod/protocol"
)

// mockTransport simulates the sensor end of the serial link for testing.
type mockTransport struct {
	writes    [][]byte
	responses [][]byte
	respIdx   int

	available int
	readErr   error
	writeErr  error
	clearErr  error

	clears   int
	timeouts []time.Duration
	closed   bool
}

func newMockTransport(responses ...[]byte) *mockTransport {
	return &mockTransport{responses: responses}
}

func (m *mockTransport) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	m.writes = append(m.writes, append([]byte{}, p...))
	return len(p), nil
}

func (m *mockTransport) Read(max int) ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	if m.respIdx >= len(m.responses) {
		return nil, nil
	}
	resp := m.responses[m.respIdx]
	m.respIdx++
	if len(resp) > max {
		resp = resp[:max]
	}
	return resp, nil
}

func (m *mockTransport) BytesAvailable() int {
	return m.available
}

func (m *mockTransport) ClearInput() error {
	m.clears++
	return m.clearErr
}

func (m *mockTransport) SetReadTimeout(timeout time.Duration) error {
	m.timeouts = append(m.timeouts, timeout)
	return nil
}

func (m *mockTransport) Close() error {
	m.closed = true
	return nil
}

// Valid reply frames used across tests.
var (
	concentrationReply = []byte{0x02, 0x00, 0x03, 0x20, 0x04, 0x00, 0x02, 0x03, 0xD4}
	sensorInfoReply    = []byte{0x19, 0x03, 0xE8, 0x02, 0x00, 0x00, 0x00, 0x30, 0xE3}
	noUnitInfoReply    = []byte{0x19, 0x03, 0xE8, 0xFF, 0x00, 0x00, 0x00, 0x30, 0xE6}
	readAllReply       = []byte{0xFF, 0x87, 0x03, 0x20, 0x04, 0x00, 0x02, 0x03, 0x09, 0xC4, 0x13, 0x88, 0xE5}
)

func TestGasConcentration(t *testing.T) {
	transport := newMockTransport(concentrationReply)
	dev := New(transport)

	m, err := dev.GasConcentration(false)
	if err != nil {
		t.Fatalf("GasConcentration() error = %v", err)
	}
	if m == nil {
		t.Fatal("GasConcentration() = nil, want a reading")
	}
	if m.GasConcentration1 != 0x0320 || m.FullRange != 0x0400 || m.GasConcentration2 != 0x0203 {
		t.Errorf("reading = %+v, want gc1=800 range=1024 gc2=515", m)
	}

	wantFrame := []byte{0xFF, 0x01, 0x86, 0x00, 0x00, 0x00, 0x00, 0x00, 0x79}
	if len(transport.writes) != 1 || !bytes.Equal(transport.writes[0], wantFrame) {
		t.Errorf("written frames = % X, want single % X", transport.writes, wantFrame)
	}
	if transport.clears == 0 {
		t.Error("stale input was not cleared before the send")
	}
}

func TestGasConcentrationChecksumMismatch(t *testing.T) {
	corrupted := append(append([]byte{}, concentrationReply[:8]...), 0x00)
	dev := New(newMockTransport(corrupted))

	m, err := dev.GasConcentration(false)
	if !errors.Is(err, protocol.ErrChecksumMismatch) {
		t.Fatalf("error = %v, want ErrChecksumMismatch", err)
	}
	if m != nil {
		t.Errorf("reading = %+v, want nil after a corrupted frame", m)
	}
}

func TestGasConcentrationWithUnits(t *testing.T) {
	transport := newMockTransport(concentrationReply, sensorInfoReply)
	dev := New(transport)

	m, err := dev.GasConcentration(true)
	if err != nil {
		t.Fatalf("GasConcentration() error = %v", err)
	}
	if m == nil {
		t.Fatal("GasConcentration() = nil, want a reading")
	}
	if m.GasUnit1 != "ppm" || m.GasUnit2 != "mg/m³" {
		t.Errorf("units = (%q, %q), want (ppm, mg/m³)", m.GasUnit1, m.GasUnit2)
	}

	// The nested info query is a bare 0xD1 byte with no framing.
	if len(transport.writes) != 2 || !bytes.Equal(transport.writes[1], []byte{0xD1}) {
		t.Errorf("second write = % X, want bare D1", transport.writes)
	}
}

func TestGasConcentrationWithUnitsUnresolved(t *testing.T) {
	// When the nested info query yields no recognized unit the whole
	// operation reports no data, discarding the decoded measurement.
	dev := New(newMockTransport(concentrationReply, noUnitInfoReply))

	m, err := dev.GasConcentration(true)
	if err != nil {
		t.Fatalf("GasConcentration() error = %v", err)
	}
	if m != nil {
		t.Errorf("reading = %+v, want nil when units were requested but unresolved", m)
	}
}

func TestReadAll(t *testing.T) {
	dev := New(newMockTransport(readAllReply, sensorInfoReply))

	m, err := dev.ReadAll(true)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if m == nil {
		t.Fatal("ReadAll() = nil, want a measurement")
	}
	if m.GasConcentration1 != 0x0320 || m.GasConcentration2 != 0x0203 {
		t.Errorf("concentrations = %d/%d, want 800/515", m.GasConcentration1, m.GasConcentration2)
	}
	if m.Temperature != 25.0 || m.Humidity != 50.0 {
		t.Errorf("climate = %v°C %v%%, want 25.0°C 50.0%%", m.Temperature, m.Humidity)
	}
	if m.GasUnit1 != "ppm" {
		t.Errorf("GasUnit1 = %q, want ppm", m.GasUnit1)
	}
}

func TestReadAllShortReply(t *testing.T) {
	dev := New(newMockTransport(readAllReply[:9]))

	m, err := dev.ReadAll(false)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if m != nil {
		t.Errorf("measurement = %+v, want nil for a short reply", m)
	}
}

func TestSensorInfo(t *testing.T) {
	transport := newMockTransport(sensorInfoReply)
	dev := New(transport)

	info, err := dev.SensorInfo()
	if err != nil {
		t.Fatalf("SensorInfo() error = %v", err)
	}
	if info == nil {
		t.Fatal("SensorInfo() = nil, want info")
	}
	if info.SensorType != 0x19 || info.MaximumRange != 1000 || info.DecimalPlaces != 3 {
		t.Errorf("info = %+v, want type=0x19 range=1000 decimals=3", info)
	}
	if !bytes.Equal(transport.writes[0], []byte{0xD1}) {
		t.Errorf("written command = % X, want bare D1 with no checksum", transport.writes[0])
	}
}

func TestSensorInfoAlt(t *testing.T) {
	altReply := []byte{0xFF, 0xD7, 0x19, 0x03, 0xE8, 0x04, 0x10, 0x00, 0x11}
	transport := newMockTransport(altReply)
	dev := New(transport)

	info, err := dev.SensorInfoAlt()
	if err != nil {
		t.Fatalf("SensorInfoAlt() error = %v", err)
	}
	if info == nil {
		t.Fatal("SensorInfoAlt() = nil, want info")
	}
	if info.Unit == nil || info.Unit.Primary != "ppb" {
		t.Errorf("Unit = %v, want ppb pair", info.Unit)
	}
	if !bytes.Equal(transport.writes[0], []byte{0xD7}) {
		t.Errorf("written command = % X, want bare D7", transport.writes[0])
	}
}

func TestSetUploadModes(t *testing.T) {
	transport := newMockTransport()
	dev := New(transport)

	if err := dev.SetActiveUpload(); err != nil {
		t.Fatalf("SetActiveUpload() error = %v", err)
	}
	if err := dev.SetPassiveUpload(); err != nil {
		t.Fatalf("SetPassiveUpload() error = %v", err)
	}

	wantActive := []byte{0xFF, 0x01, 0x78, 0x40, 0x00, 0x00, 0x00, 0x00, 0x47}
	wantPassive := []byte{0xFF, 0x01, 0x78, 0x41, 0x00, 0x00, 0x00, 0x00, 0x46}
	if len(transport.writes) != 2 {
		t.Fatalf("writes = %d, want 2", len(transport.writes))
	}
	if !bytes.Equal(transport.writes[0], wantActive) {
		t.Errorf("active frame = % X, want % X", transport.writes[0], wantActive)
	}
	if !bytes.Equal(transport.writes[1], wantPassive) {
		t.Errorf("passive frame = % X, want % X", transport.writes[1], wantPassive)
	}
}

func TestSetUploadModeAbsorbsWriteFailure(t *testing.T) {
	transport := newMockTransport()
	transport.writeErr = errors.New("port gone")
	dev := New(transport)

	if err := dev.SetActiveUpload(); err != nil {
		t.Fatalf("SetActiveUpload() error = %v, want suppressed nil", err)
	}

	strict := New(transport, WithStrictErrors())
	if err := strict.SetActiveUpload(); err == nil {
		t.Fatal("SetActiveUpload() with strict errors = nil, want error")
	}
}

func TestSleepModeAcks(t *testing.T) {
	transport := newMockTransport([]byte("OK"))
	dev := New(transport)

	acked, err := dev.EnterSleepMode()
	if err != nil {
		t.Fatalf("EnterSleepMode() error = %v", err)
	}
	if !acked {
		t.Error("EnterSleepMode() = false, want acked")
	}
	if !bytes.Equal(transport.writes[0], []byte{0xAF, 'S', 'l', 'e', 'e', 'p'}) {
		t.Errorf("enter sleep command = % X", transport.writes[0])
	}
}

func TestSleepModeRejection(t *testing.T) {
	dev := New(newMockTransport([]byte("no")))
	acked, err := dev.EnterSleepMode()
	if err != nil {
		t.Fatalf("EnterSleepMode() error = %v", err)
	}
	if acked {
		t.Error("EnterSleepMode() = true for a non-ok reply")
	}
}

func TestSleepModeNoReply(t *testing.T) {
	dev := New(newMockTransport())
	acked, err := dev.EnterSleepMode()
	if err != nil {
		t.Fatalf("EnterSleepMode() error = %v, want suppressed nil", err)
	}
	if acked {
		t.Error("EnterSleepMode() = true with no reply")
	}
}

func TestExitSleepModeRestoreWait(t *testing.T) {
	transport := newMockTransport([]byte("ok"))
	dev := New(transport, WithRestoreDelay(time.Millisecond))

	start := time.Now()
	acked, err := dev.ExitSleepMode(true)
	if err != nil {
		t.Fatalf("ExitSleepMode() error = %v", err)
	}
	if !acked {
		t.Error("ExitSleepMode() = false, want acked")
	}
	if time.Since(start) < time.Millisecond {
		t.Error("ExitSleepMode(true) returned before the settle period")
	}
	if !bytes.Equal(transport.writes[0], []byte{0xAE, 'E', 'x', 'i', 't'}) {
		t.Errorf("exit sleep command = % X", transport.writes[0])
	}
}

func TestSleepMode2(t *testing.T) {
	// The alternate family answers with a full checksummed frame.
	reply := []byte{0xFF, 0xA1, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x5F}
	transport := newMockTransport(reply)
	dev := New(transport)

	acked, err := dev.EnterSleepMode2()
	if err != nil {
		t.Fatalf("EnterSleepMode2() error = %v", err)
	}
	if !acked {
		t.Error("EnterSleepMode2() = false, want acked")
	}
	if !bytes.Equal(transport.writes[0], []byte{0xA1, 'S', 'l', 'e', 'e', 'p', '2'}) {
		t.Errorf("enter sleep 2 command = % X", transport.writes[0])
	}
}

func TestSleepMode2ChecksumMismatch(t *testing.T) {
	reply := []byte{0xFF, 0xA1, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	dev := New(newMockTransport(reply))

	acked, err := dev.EnterSleepMode2()
	if !errors.Is(err, protocol.ErrChecksumMismatch) {
		t.Fatalf("error = %v, want ErrChecksumMismatch", err)
	}
	if acked {
		t.Error("EnterSleepMode2() = true despite a corrupted reply")
	}
}

func TestExitSleepMode2(t *testing.T) {
	reply := []byte{0xFF, 0xA2, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x5E}
	transport := newMockTransport(reply)
	dev := New(transport, WithRestoreDelay(time.Millisecond))

	acked, err := dev.ExitSleepMode2(true)
	if err != nil {
		t.Fatalf("ExitSleepMode2() error = %v", err)
	}
	if !acked {
		t.Error("ExitSleepMode2() = false, want acked")
	}
	if !bytes.Equal(transport.writes[0], []byte{0xA2, 'E', 'x', 'i', 't', '2'}) {
		t.Errorf("exit sleep 2 command = % X", transport.writes[0])
	}
}

func TestLightControl(t *testing.T) {
	transport := newMockTransport([]byte("ok"), []byte("ok"))
	dev := New(transport)

	if acked, err := dev.TurnOnLight(); err != nil || !acked {
		t.Fatalf("TurnOnLight() = (%v, %v), want (true, nil)", acked, err)
	}
	if acked, err := dev.TurnOffLight(); err != nil || !acked {
		t.Fatalf("TurnOffLight() = (%v, %v), want (true, nil)", acked, err)
	}

	wantOn := []byte{0xFF, 0x01, 0x89, 0x00, 0x00, 0x00, 0x00, 0x00, 0x76}
	wantOff := []byte{0xFF, 0x01, 0x88, 0x00, 0x00, 0x00, 0x00, 0x00, 0x77}
	if !bytes.Equal(transport.writes[0], wantOn) {
		t.Errorf("light on frame = % X, want % X", transport.writes[0], wantOn)
	}
	if !bytes.Equal(transport.writes[1], wantOff) {
		t.Errorf("light off frame = % X, want % X", transport.writes[1], wantOff)
	}
}

func TestQueryLightStatus(t *testing.T) {
	on := []byte{0xFF, 0x8A, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x75}
	dev := New(newMockTransport(on))

	lit, ok, err := dev.QueryLightStatus()
	if err != nil {
		t.Fatalf("QueryLightStatus() error = %v", err)
	}
	if !ok || !lit {
		t.Errorf("QueryLightStatus() = (%v, %v), want (true, true)", lit, ok)
	}
}

func TestQueryLightStatusNoReply(t *testing.T) {
	dev := New(newMockTransport())

	lit, ok, err := dev.QueryLightStatus()
	if err != nil {
		t.Fatalf("QueryLightStatus() error = %v, want suppressed nil", err)
	}
	if ok || lit {
		t.Errorf("QueryLightStatus() = (%v, %v), want (false, false)", lit, ok)
	}
}

func TestActiveReading(t *testing.T) {
	transport := newMockTransport(concentrationReply)
	transport.available = 9
	dev := New(transport)

	m, err := dev.ActiveReading()
	if err != nil {
		t.Fatalf("ActiveReading() error = %v", err)
	}
	if m == nil {
		t.Fatal("ActiveReading() = nil, want a reading")
	}
	if m.GasConcentration1 != 0x0320 {
		t.Errorf("GasConcentration1 = %d, want 800", m.GasConcentration1)
	}
	// Push frames are read directly; nothing is written.
	if len(transport.writes) != 0 {
		t.Errorf("writes = % X, want none", transport.writes)
	}
}

func TestActiveReadingNothingBuffered(t *testing.T) {
	transport := newMockTransport(concentrationReply)
	dev := New(transport)

	m, err := dev.ActiveReading()
	if err != nil {
		t.Fatalf("ActiveReading() error = %v", err)
	}
	if m != nil {
		t.Errorf("reading = %+v, want nil when nothing is buffered", m)
	}
	if transport.respIdx != 0 {
		t.Error("ActiveReading() read from the transport with nothing buffered")
	}
}

func TestTemperatureHumidityNotImplemented(t *testing.T) {
	dev := New(newMockTransport())

	if _, _, err := dev.TemperatureHumidity(); !errors.Is(err, protocol.ErrNotImplemented) {
		t.Errorf("TemperatureHumidity() error = %v, want ErrNotImplemented", err)
	}
	if _, _, err := dev.TemperatureHumidityCalibrated(); !errors.Is(err, protocol.ErrNotImplemented) {
		t.Errorf("TemperatureHumidityCalibrated() error = %v, want ErrNotImplemented", err)
	}
}

func TestClose(t *testing.T) {
	transport := newMockTransport()
	dev := New(transport)

	if err := dev.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !transport.closed {
		t.Error("Close() did not release the transport")
	}
}

func TestNewNilTransportPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(nil) did not panic")
		}
	}()
	New(nil)
}
