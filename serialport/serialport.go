// Package serialport implements the sensor.Transport interface over a
// serial port using go.bug.st/serial.
//
// The PS1-XX-XX-MOD modules speak 9600 8N1; Open defaults to that, with a
// one second read timeout.
package serialport

import (
	"time"

	"go.bug.st/serial"

	"github.com/gassense/go-ps1mod/sensor"
)

// pollTimeout bounds the non-blocking probe BytesAvailable performs when its
// internal buffer is empty.
const pollTimeout = 5 * time.Millisecond

// Config holds the serial line parameters.
type Config struct {
	// BaudRate in bits per second. Default 9600.
	BaudRate int

	// DataBits per character. Default 8.
	DataBits int

	// Parity bit mode. Default none.
	Parity serial.Parity

	// StopBits after each character. Default one.
	StopBits serial.StopBits

	// ReadTimeout bounds blocking reads. Default one second.
	ReadTimeout time.Duration
}

func (c *Config) withDefaults() Config {
	cfg := Config{
		BaudRate:    9600,
		DataBits:    8,
		Parity:      serial.NoParity,
		StopBits:    serial.OneStopBit,
		ReadTimeout: time.Second,
	}
	if c == nil {
		return cfg
	}
	if c.BaudRate > 0 {
		cfg.BaudRate = c.BaudRate
	}
	if c.DataBits > 0 {
		cfg.DataBits = c.DataBits
	}
	cfg.Parity = c.Parity
	cfg.StopBits = c.StopBits
	if c.ReadTimeout > 0 {
		cfg.ReadTimeout = c.ReadTimeout
	}
	return cfg
}

// Port is a serial connection implementing sensor.Transport. Not safe for
// concurrent use; the owning session serializes access.
type Port struct {
	port    serial.Port
	timeout time.Duration

	// pending holds bytes pulled off the wire by BytesAvailable probes that
	// have not been consumed by Read yet
	pending []byte
}

var _ sensor.Transport = (*Port)(nil)

// Open opens the serial port at path. A nil config selects the sensor's
// native 9600 8N1 with a one second read timeout.
//
// Example:
//
//	port, err := serialport.Open("/dev/ttyUSB0", nil)
func Open(path string, config *Config) (*Port, error) {
	cfg := config.withDefaults()

	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		Parity:   cfg.Parity,
		StopBits: cfg.StopBits,
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, err
	}
	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		port.Close()
		return nil, err
	}

	return &Port{port: port, timeout: cfg.ReadTimeout}, nil
}

// Write sends bytes to the device.
func (p *Port) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Read returns up to max bytes, accumulating partial reads until either max
// bytes arrived or the read timeout elapsed. A short (or empty) result on
// timeout is not an error.
func (p *Port) Read(max int) ([]byte, error) {
	if max <= 0 {
		return nil, nil
	}

	buf := make([]byte, 0, max)
	if len(p.pending) > 0 {
		n := len(p.pending)
		if n > max {
			n = max
		}
		buf = append(buf, p.pending[:n]...)
		p.pending = p.pending[n:]
	}

	var deadline time.Time
	if p.timeout > 0 {
		deadline = time.Now().Add(p.timeout)
	}

	chunk := make([]byte, max)
	for len(buf) < max {
		n, err := p.port.Read(chunk[:max-len(buf)])
		if err != nil {
			return buf, err
		}
		if n == 0 {
			// Read timeout expired with nothing buffered.
			break
		}
		buf = append(buf, chunk[:n]...)
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
	}
	return buf, nil
}

// BytesAvailable reports how many received bytes are already buffered. The
// underlying library exposes no input-queue count, so the port probes with a
// short read timeout and parks whatever arrived in an internal buffer for
// the next Read.
func (p *Port) BytesAvailable() int {
	if len(p.pending) > 0 {
		return len(p.pending)
	}

	if err := p.port.SetReadTimeout(pollTimeout); err != nil {
		return 0
	}
	defer p.port.SetReadTimeout(p.timeout)

	probe := make([]byte, 64)
	n, err := p.port.Read(probe)
	if err != nil || n == 0 {
		return 0
	}
	p.pending = append(p.pending, probe[:n]...)
	return len(p.pending)
}

// ClearInput discards stale buffered input, both in the OS queue and in the
// internal probe buffer.
func (p *Port) ClearInput() error {
	p.pending = nil
	return p.port.ResetInputBuffer()
}

// SetReadTimeout changes the timeout bounding blocking reads.
func (p *Port) SetReadTimeout(timeout time.Duration) error {
	if err := p.port.SetReadTimeout(timeout); err != nil {
		return err
	}
	p.timeout = timeout
	return nil
}

// Close releases the serial port.
func (p *Port) Close() error {
	return p.port.Close()
}
