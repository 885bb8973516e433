//go:build !linux

package http

import (
	"net"
	"os"
)

// transferFile uses the buffered copy loop on platforms without a wired
// kernel-assisted transfer.
func transferFile(conn net.Conn, src *os.File) (int64, error) {
	return copyFile(conn, src)
}
