package upd72020x

import (
	"io"

	"github.com/juju/errors"
	"periph.io/x/conn/v3"
)

// fileConn exposes a seekable configuration space file (usually
// /sys/bus/pci/devices/*/config) as a conn.Conn with 8-bit register
// addressing, which is what mmr.Dev8 speaks:
//
//	Tx([]byte{off}, r)          reads len(r) bytes at off
//	Tx([]byte{off, data...}, nil) writes data at off
type fileConn struct {
	name string
	f    io.ReadWriteSeeker
}

func newFileConn(name string, f io.ReadWriteSeeker) *fileConn {
	return &fileConn{name: name, f: f}
}

func (c *fileConn) String() string { return c.name }

func (c *fileConn) Duplex() conn.Duplex { return conn.Half }

func (c *fileConn) Tx(w, r []byte) error {
	if len(w) == 0 {
		return errors.New("missing register offset")
	}
	if len(r) != 0 && len(w) != 1 {
		return errors.New("combined write and read is not supported")
	}
	if _, err := c.f.Seek(int64(w[0]), io.SeekStart); err != nil {
		return errors.Trace(err)
	}
	if len(r) != 0 {
		n, err := c.f.Read(r)
		if n != len(r) {
			if err == nil || err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return errors.Annotatef(err, "read %d of %d bytes", n, len(r))
		}
		return nil
	}
	data := w[1:]
	if len(data) == 0 {
		return nil
	}
	n, err := c.f.Write(data)
	if err != nil {
		return errors.Trace(err)
	}
	if n != len(data) {
		return errors.Annotatef(io.ErrShortWrite, "wrote %d of %d bytes", n, len(data))
	}
	return nil
}
