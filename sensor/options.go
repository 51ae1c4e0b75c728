package sensor

import "time"

// Config holds the session configuration.
type Config struct {
	// Attempts is the number of send attempts per request
	Attempts int

	// ReadTimeout overrides the transport's read timeout before each read.
	// Zero leaves the transport's own timeout in place.
	ReadTimeout time.Duration

	// WriteTimeout overrides the transport timeout before each write.
	// Zero leaves the transport's own timeout in place.
	WriteTimeout time.Duration

	// ResponseWait is an extra delay between writing a command and reading
	// its reply
	ResponseWait time.Duration

	// RestoreDelay is how long ExitSleepMode blocks when asked to wait for
	// the sensor to settle after leaving sleep
	RestoreDelay time.Duration

	// SuppressErrors degrades transport-level failures (no response, bad
	// timeout values) to an absent result instead of an error. Checksum
	// mismatches always propagate regardless.
	SuppressErrors bool

	// Logger is used for logging operations (optional)
	Logger Logger
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Attempts:       3,
		RestoreDelay:   5 * time.Second,
		SuppressErrors: true,
	}
}

// Option is a functional option for configuring the session.
type Option func(*Config)

// WithAttempts sets the number of send attempts per request.
//
// Example:
//
//	dev := sensor.New(port, sensor.WithAttempts(5))
func WithAttempts(attempts int) Option {
	return func(c *Config) {
		if attempts > 0 {
			c.Attempts = attempts
		}
	}
}

// WithReadTimeout sets a read timeout applied to the transport before each
// reply read. The value is validated at request time: a non-positive
// explicit timeout fails with ErrInvalidParameter when suppression is off.
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.ReadTimeout = timeout
	}
}

// WithWriteTimeout sets a timeout applied to the transport before each
// command write, validated the same way as WithReadTimeout.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.WriteTimeout = timeout
	}
}

// WithResponseWait inserts a delay between writing a command and reading its
// reply. Some module revisions need a settle pause before they answer.
func WithResponseWait(wait time.Duration) Option {
	return func(c *Config) {
		c.ResponseWait = wait
	}
}

// WithRestoreDelay sets the settle period for sleep-mode exit with
// waitForRestore. The protocol default is 5 seconds.
func WithRestoreDelay(delay time.Duration) Option {
	return func(c *Config) {
		if delay > 0 {
			c.RestoreDelay = delay
		}
	}
}

// WithStrictErrors disables error suppression: exhausted retries surface as
// ErrNoResponse and invalid timeout or wait values as ErrInvalidParameter
// instead of an absent result.
func WithStrictErrors() Option {
	return func(c *Config) {
		c.SuppressErrors = false
	}
}

// WithLogger sets a logger for session operations.
//
// Example:
//
//	dev := sensor.New(port, sensor.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
