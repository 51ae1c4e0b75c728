// Package sensor provides a high-level session API for PS1-XX-XX-MOD gas
// sensor modules.
//
// # Overview
//
// A Sensor combines the wire codec in the protocol package with a Transport
// (the open serial connection) and exposes the module's operations:
//   - Switching between active (push) and passive (poll) upload modes
//   - Device metadata queries in both wire layouts
//   - Gas concentration and full read-all measurements
//   - Light control and status
//   - Both sleep-mode command families
//
// # Basic Usage
//
//	port, err := serialport.Open("/dev/ttyUSB0", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	dev := sensor.New(port)
//	defer dev.Close()
//
//	dev.SetPassiveUpload()
//	m, err := dev.ReadAll(true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if m != nil {
//	    fmt.Printf("%d %s, %.2f°C, %.2f%%RH\n",
//	        m.GasConcentration1, m.GasUnit1, m.Temperature, m.Humidity)
//	}
//
// # Absent Results
//
// Most operations degrade transport failures to an absent result: a nil
// reading (or a false acknowledgement) with a nil error means the sensor did
// not answer and the caller should simply try again. Checksum mismatches are
// the exception and always surface as an error, because a corrupted frame
// must never pass as valid data. Enable sensor.WithStrictErrors to turn
// exhausted retries and invalid timeout values into errors as well.
//
// # Configuration Options
//
// Customize behavior with functional options:
//
//	dev := sensor.New(port,
//	    sensor.WithAttempts(5),
//	    sensor.WithReadTimeout(2*time.Second),
//	    sensor.WithResponseWait(50*time.Millisecond),
//	    sensor.WithStrictErrors(),
//	    sensor.WithLogger(myLogger),
//	)
//
// # Hardware Independence
//
// The session depends only on the Transport interface. The serialport
// package provides the serial implementation; tests and demos substitute
// in-memory transports.
package sensor
