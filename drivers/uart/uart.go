// Package uart adapts a tarm/serial port to the link.Driver interface. This
// is the one physical transport in scope for the core (spec.md §6 groups
// radio link, wired UART, and USB serial as conforming equally); a
// radio-specific or USB-specific driver would be a thin variant of this
// same two-method adapter and is out of scope here.
package uart

import (
	"fmt"

	"github.com/tarm/serial"
)

// Driver wraps an open serial port as a link.Driver.
type Driver struct {
	port *serial.Port
}

// Open opens device at baud and returns a Driver over it.
func Open(device string, baud int) (*Driver, error) {
	cfg := &serial.Config{
		Name:        device,
		Baud:        baud,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
		ReadTimeout: 0,
	}
	port, err := serial.OpenPort(cfg)
	if err != nil {
		return nil, fmt.Errorf("uart: failed to open %s: %w", device, err)
	}
	return &Driver{port: port}, nil
}

// Write implements link.Driver.
func (d *Driver) Write(buf []byte) bool {
	_, err := d.port.Write(buf)
	return err == nil
}

// Read implements link.Driver: it appends newly available bytes to *buf.
func (d *Driver) Read(buf *[]byte) int {
	scratch := make([]byte, 512)
	n, err := d.port.Read(scratch)
	if err != nil {
		return -1
	}
	*buf = append(*buf, scratch[:n]...)
	return n
}

// Close releases the underlying serial port.
func (d *Driver) Close() error {
	return d.port.Close()
}
