package sensor

// Logger is an optional logging interface that can be provided to the
// session. This allows integration with any logging framework.
//
// Example with logrus:
//
//	type LogrusLogger struct{ L *logrus.Logger }
//	func (l *LogrusLogger) Debug(msg string, kv ...interface{}) { l.L.Debug(append([]interface{}{msg}, kv...)...) }
//	func (l *LogrusLogger) Info(msg string, kv ...interface{})  { l.L.Info(append([]interface{}{msg}, kv...)...) }
//	func (l *LogrusLogger) Error(msg string, kv ...interface{}) { l.L.Error(append([]interface{}{msg}, kv...)...) }
//
//	dev := sensor.New(port, sensor.WithLogger(&LogrusLogger{L: logrus.StandardLogger()}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
