package http

import (
	"bufio"
	"net"
	"strconv"
)

// respond serializes resp onto the connection. Write order: status line,
// Content-Length (when known), Connection: keep-alive (when requested and
// the length is known), stored headers in insertion order, blank line, then
// the body callback. It reports whether the connection may be kept alive.
func respond(bw *bufio.Writer, conn net.Conn, resp *Response, requestKeepAlive bool) (bool, error) {
	keepAlive := requestKeepAlive && resp.lengthKnown()

	bw.WriteString(resp.statusLine())
	bw.WriteString("\r\n")

	if resp.lengthKnown() {
		bw.WriteString("Content-Length: ")
		bw.WriteString(strconv.FormatInt(resp.ContentLength, 10))
		bw.WriteString("\r\n")
	}
	if keepAlive {
		bw.WriteString("Connection: keep-alive\r\n")
	}
	for _, h := range resp.Headers.All() {
		bw.WriteString(h.Name)
		bw.WriteString(": ")
		bw.WriteString(h.Value)
		bw.WriteString("\r\n")
	}
	bw.WriteString("\r\n")

	if resp.WriteBody != nil {
		w := &connBodyWriter{bw: bw, conn: conn}
		if err := resp.WriteBody(w); err != nil {
			return false, err
		}
	}

	if err := bw.Flush(); err != nil {
		return false, err
	}
	return keepAlive, nil
}
