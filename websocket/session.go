package websocket

import (
	"bufio"
	"net"
	"sync"
)

// Handler carries the session callbacks. Nil callbacks are skipped.
type Handler struct {
	OnConnect    func(*Session)
	OnText       func(*Session, string)
	OnBinary     func(*Session, []byte)
	OnDisconnect func(*Session)
}

// Session is one established websocket connection. Write methods are safe
// for concurrent use; frames are read by the session's own loop.
type Session struct {
	conn net.Conn
	br   *bufio.Reader

	mu sync.Mutex // serializes frame writes
}

func newSession(conn net.Conn) *Session {
	return &Session{
		conn: conn,
		br:   bufio.NewReader(conn),
	}
}

// RemoteAddr returns the peer address.
func (s *Session) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}

func (s *Session) WriteText(payload string) error {
	return s.write(opText, []byte(payload))
}

func (s *Session) WriteBinary(payload []byte) error {
	return s.write(opBinary, payload)
}

func (s *Session) Ping(payload []byte) error {
	return s.write(opPing, payload)
}

// Close sends a close frame. The peer's close echo ends the session loop.
func (s *Session) Close() error {
	return s.write(opClose, nil)
}

func (s *Session) write(opcode byte, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeFrame(s.conn, opcode, payload)
}

// run drives the frame loop until the peer closes, a protocol violation
// occurs, or the socket fails. The takeover handed the socket to this
// session, so closing it here is the session's job.
func (s *Session) run(handler Handler) {
	defer func() {
		s.conn.Close()
		if handler.OnDisconnect != nil {
			handler.OnDisconnect(s)
		}
	}()

	if handler.OnConnect != nil {
		handler.OnConnect(s)
	}

	var (
		messageOp      byte
		messagePayload []byte
	)
	for {
		f, err := readFrame(s.br)
		if err != nil {
			return
		}

		switch f.opcode {
		case opPing:
			if err := s.write(opPong, f.payload); err != nil {
				return
			}
		case opPong:
			// Unsolicited pongs are allowed and ignored.
		case opClose:
			s.write(opClose, nil)
			return
		case opText, opBinary:
			if !f.fin {
				messageOp = f.opcode
				messagePayload = append([]byte(nil), f.payload...)
				continue
			}
			s.deliver(handler, f.opcode, f.payload)
		case opContinuation:
			if messageOp == 0 {
				return
			}
			if len(messagePayload)+len(f.payload) > MaxFramePayload {
				return
			}
			messagePayload = append(messagePayload, f.payload...)
			if f.fin {
				s.deliver(handler, messageOp, messagePayload)
				messageOp, messagePayload = 0, nil
			}
		}
	}
}

func (s *Session) deliver(handler Handler, opcode byte, payload []byte) {
	switch opcode {
	case opText:
		if handler.OnText != nil {
			handler.OnText(s, string(payload))
		}
	case opBinary:
		if handler.OnBinary != nil {
			handler.OnBinary(s, payload)
		}
	}
}
