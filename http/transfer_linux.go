//go:build linux

package http

import (
	"errors"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// transferFile moves the remainder of src onto conn with sendfile(2) when
// conn is a TCP socket, falling back to the buffered copy loop otherwise.
func transferFile(conn net.Conn, src *os.File) (int64, error) {
	tcp, ok := conn.(*net.TCPConn)
	if !ok {
		return copyFile(conn, src)
	}

	raw, err := tcp.SyscallConn()
	if err != nil {
		return copyFile(conn, src)
	}

	srcFd := int(src.Fd())
	var (
		written  int64
		xferErr  error
		fallback bool
	)
	err = raw.Write(func(fd uintptr) (done bool) {
		for {
			n, serr := unix.Sendfile(int(fd), srcFd, nil, CopyBufferSize)
			if n > 0 {
				written += int64(n)
				continue
			}
			switch {
			case serr == nil:
				// Zero bytes without an error: end of file.
				return true
			case errors.Is(serr, unix.EINTR):
				continue
			case errors.Is(serr, unix.EAGAIN):
				// Socket not writable yet, retry once it is.
				return false
			case errors.Is(serr, unix.EINVAL) || errors.Is(serr, unix.ENOSYS):
				// Source not sendfile-capable on this kernel.
				fallback = written == 0
				if !fallback {
					xferErr = serr
				}
				return true
			default:
				xferErr = serr
				return true
			}
		}
	})
	if err != nil {
		return written, err
	}
	if fallback {
		return copyFile(conn, src)
	}
	return written, xferErr
}
