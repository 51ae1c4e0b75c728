package sensor

import (
	"fmt"
	"time"

	"github.com/gassense/go-ps1mod/protocol"
)

// Transport is the duplex byte stream the session talks through, typically
// an open serial connection. The session depends only on this interface, not
// on any specific transport technology.
//
// A Transport is exclusively owned by one Sensor for its lifetime: input
// buffer clearing and timeout mutation are not coordinated, so sharing one
// transport across sessions needs external synchronization.
type Transport interface {
	// Write sends bytes to the device
	Write(p []byte) (int, error)

	// Read returns up to max bytes; fewer (or none) on timeout
	Read(max int) ([]byte, error)

	// BytesAvailable reports how many received bytes are already buffered
	BytesAvailable() int

	// ClearInput discards stale buffered input
	ClearInput() error

	// SetReadTimeout changes the timeout bounding blocking reads
	SetReadTimeout(timeout time.Duration) error

	// Close releases the underlying connection
	Close() error
}

// request describes one transport round trip. Attempt count, pre-read wait
// and timeout overrides are named fields rather than hidden defaults; zero
// values fall back to the session configuration.
type request struct {
	// frame is the exact byte sequence to write, before any checksum append
	frame []byte

	// expectResponse selects the retry/read loop; when false, success is
	// reported immediately after a single write
	expectResponse bool

	// responseSize is the expected reply size in bytes
	responseSize int

	// appendChecksum appends the frame checksum (computed excluding the
	// first byte) to raw command bytes before sending
	appendChecksum bool

	// waitBeforeRead overrides the configured response wait for this request
	waitBeforeRead time.Duration
}

// send performs the request/response cycle: clear stale input, write the
// frame, optionally wait, then read the reply, retrying up to the configured
// attempt budget. With suppression enabled (the default), transport-level
// failures return (nil, nil) so the caller sees an absent result; with
// suppression disabled they surface as ErrInvalidParameter or ErrNoResponse.
func (s *Sensor) send(req request) ([]byte, error) {
	if s.config.WriteTimeout != 0 {
		if s.config.WriteTimeout > 0 {
			if err := s.transport.SetReadTimeout(s.config.WriteTimeout); err != nil {
				return nil, fmt.Errorf("set write timeout: %w", err)
			}
		} else if !s.config.SuppressErrors {
			return nil, fmt.Errorf("%w: write timeout must be greater than 0", protocol.ErrInvalidParameter)
		}
	}

	frame := req.frame
	if req.appendChecksum {
		checksum, err := protocol.Checksum(frame, false, 0)
		if err != nil {
			return nil, err
		}
		frame = append(append(make([]byte, 0, len(frame)+1), frame...), checksum)
	}

	wait := req.waitBeforeRead
	if wait == 0 {
		wait = s.config.ResponseWait
	}

	for attempt := 0; attempt < s.config.Attempts; attempt++ {
		if err := s.transport.ClearInput(); err != nil && !s.config.SuppressErrors {
			return nil, fmt.Errorf("clear input buffer: %w", err)
		}

		if _, err := s.transport.Write(frame); err != nil {
			s.logError("write failed", "attempt", attempt+1, "error", err)
			if !s.config.SuppressErrors {
				return nil, fmt.Errorf("write command: %w", err)
			}
			continue
		}
		s.logDebug("frame sent", "frame", fmt.Sprintf("% X", frame), "attempt", attempt+1)

		if !req.expectResponse {
			return nil, nil
		}

		if wait != 0 {
			if wait > 0 {
				time.Sleep(wait)
			} else if !s.config.SuppressErrors {
				return nil, fmt.Errorf("%w: wait time must be greater than 0", protocol.ErrInvalidParameter)
			}
		}

		if s.config.ReadTimeout != 0 {
			if s.config.ReadTimeout > 0 {
				if err := s.transport.SetReadTimeout(s.config.ReadTimeout); err != nil {
					return nil, fmt.Errorf("set read timeout: %w", err)
				}
			} else if !s.config.SuppressErrors {
				return nil, fmt.Errorf("%w: read timeout must be greater than 0", protocol.ErrInvalidParameter)
			}
		}

		response, err := s.transport.Read(req.responseSize)
		if err != nil {
			s.logError("read failed", "attempt", attempt+1, "error", err)
			continue
		}
		if len(response) > 0 {
			s.logDebug("reply received", "reply", fmt.Sprintf("% X", response))
			return response, nil
		}
	}

	if !s.config.SuppressErrors {
		return nil, protocol.ErrNoResponse
	}
	return nil, nil
}
