package http

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
)

// BodyWriter is the capability handed to a response's WriteBody callback.
// It is bound to one connection for the duration of one response.
type BodyWriter interface {
	io.Writer

	// WriteFile streams the whole file to the connection, using a
	// kernel-assisted zero-copy transfer when the platform has one and a
	// buffered copy loop otherwise. It returns the number of body bytes
	// transferred. Transferring an empty file is a successful zero-byte
	// transfer.
	WriteFile(f *os.File) (int64, error)
}

type connBodyWriter struct {
	bw   *bufio.Writer
	conn net.Conn
}

func (w *connBodyWriter) Write(p []byte) (int, error) {
	return w.bw.Write(p)
}

func (w *connBodyWriter) WriteFile(f *os.File) (int64, error) {
	// Buffered header bytes must reach the socket before any out-of-band
	// file transfer.
	if err := w.bw.Flush(); err != nil {
		return 0, err
	}
	return transferFile(w.conn, f)
}

// copyFile is the portable transfer path: fixed-size read/write loop. The
// transfer is complete when a read returns 0 bytes or io.EOF; a short write
// aborts it as a write failure.
func copyFile(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, CopyBufferSize)
	var written int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			wn, werr := dst.Write(buf[:n])
			if werr != nil {
				return written, werr
			}
			if wn < n {
				return written, fmt.Errorf("http: file transfer: %w", io.ErrShortWrite)
			}
			written += int64(wn)
		}
		if rerr == io.EOF || (rerr == nil && n == 0) {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}
