package link

import "sync"

// fakeDriver is an in-memory Driver for unit tests: writes accumulate into
// a buffer a test can inspect or feed back in as inbound bytes.
type fakeDriver struct {
	mu      sync.Mutex
	written [][]byte
	inbound []byte
	failNextWrite bool
}

func (d *fakeDriver) Write(buf []byte) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.failNextWrite {
		d.failNextWrite = false
		return false
	}
	cp := append([]byte(nil), buf...)
	d.written = append(d.written, cp)
	return true
}

func (d *fakeDriver) Read(buf *[]byte) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.inbound) == 0 {
		return 0
	}
	n := len(d.inbound)
	if n > 512 {
		n = 512
	}
	*buf = append(*buf, d.inbound[:n]...)
	d.inbound = d.inbound[n:]
	return n
}

func (d *fakeDriver) feed(b []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inbound = append(d.inbound, b...)
}

func (d *fakeDriver) writes() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]byte, len(d.written))
	copy(out, d.written)
	return out
}
