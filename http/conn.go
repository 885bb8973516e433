package http

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"

	"github.com/google/uuid"
)

// serveConn drives one connection: read a request, dispatch it, write the
// response, then loop, hand the socket over, or close. Failures here only
// ever end this connection.
func (s *Server) serveConn(conn net.Conn, id uuid.UUID) {
	log := s.Logger.With(slog.String("conn_id", id.String()))

	br := bufio.NewReaderSize(conn, DefaultReadBufferSize)
	bw := bufio.NewWriterSize(conn, DefaultWriteBufferSize)
	remoteAddr := conn.RemoteAddr().String()

	for {
		req, err := s.Parser.ReadRequest(br)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				log.Debug("read request", slog.String("error", err.Error()))
			}
			break
		}
		req.RemoteAddr = remoteAddr

		params, handler := s.dispatch(req)
		req.Params = params
		resp := handler(req)

		keepAlive, err := respond(bw, conn, &resp, s.Parser.SupportsKeepAlive(req))
		if err != nil {
			log.Debug("write response", slog.String("error", err.Error()))
			break
		}
		s.responses.Add(context.Background(), 1)

		if resp.Takeover != nil {
			// Ownership of the socket moves to the takeover action; it is no
			// longer the server's to close. Bytes the client pipelined past
			// the request head are sitting in br and must travel with it.
			s.registry.Remove(conn)
			s.openConns.Add(context.Background(), -1)
			resp.Takeover(handoffConn(conn, br))
			return
		}

		if !keepAlive {
			break
		}
		req.drainBody()
	}

	conn.Close()
	s.registry.Remove(conn)
	s.openConns.Add(context.Background(), -1)
}

// takenConn replays request bytes that had already been buffered before the
// socket was handed over, then reads from the socket directly.
type takenConn struct {
	net.Conn
	r io.Reader
}

func (c *takenConn) Read(p []byte) (int, error) {
	return c.r.Read(p)
}

func handoffConn(conn net.Conn, br *bufio.Reader) net.Conn {
	n := br.Buffered()
	if n == 0 {
		return conn
	}
	pending := make([]byte, n)
	br.Read(pending)
	return &takenConn{Conn: conn, r: io.MultiReader(bytes.NewReader(pending), conn)}
}
