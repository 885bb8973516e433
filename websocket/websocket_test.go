package websocket

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	nethttp "net/http"
	"testing"
	"time"

	"github.com/alexsup/swifter/http"
)

func TestAcceptKey(t *testing.T) {
	// RFC6455 section 1.3 sample handshake.
	got := AcceptKey("dGhlIHNhbXBsZSBub25jZQ==")
	want := "s3pPLMBiTxaQ9kYGzzhZRbK+xOo="
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func upgradeRequest() *http.Request {
	req := &http.Request{Method: "GET", Path: "/echo", Proto: "HTTP/1.1"}
	req.Headers.Add("Upgrade", "websocket")
	req.Headers.Add("Connection", "Upgrade")
	req.Headers.Add("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
	req.Headers.Add("Sec-WebSocket-Version", "13")
	return req
}

func TestUpgradeResponse(t *testing.T) {
	resp := Upgrade(upgradeRequest(), Handler{})

	if resp.Status != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.Status)
	}
	if resp.ContentLength != http.ContentLengthUnknown {
		t.Error("upgrade response must not carry a content length")
	}
	if resp.Headers.Get("Sec-WebSocket-Accept") != "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=" {
		t.Errorf("bad accept key %q", resp.Headers.Get("Sec-WebSocket-Accept"))
	}
	if resp.Takeover == nil {
		t.Error("upgrade response must carry a takeover action")
	}
}

func TestUpgradeRejectsBadRequests(t *testing.T) {
	missingUpgrade := upgradeRequest()
	missingUpgrade.Headers.Set("Upgrade", "h2c")

	badVersion := upgradeRequest()
	badVersion.Headers.Set("Sec-WebSocket-Version", "8")

	missingKey := upgradeRequest()
	missingKey.Headers.Set("Sec-WebSocket-Key", "")

	for name, req := range map[string]*http.Request{
		"missing upgrade token": missingUpgrade,
		"bad version":           badVersion,
		"missing key":           missingKey,
	} {
		resp := Upgrade(req, Handler{})
		if resp.Status != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, resp.Status)
		}
		if resp.Takeover != nil {
			t.Errorf("%s: rejected upgrade must not take the socket", name)
		}
	}
}

func writeClientFrame(t *testing.T, w io.Writer, fin bool, opcode byte, payload []byte) {
	t.Helper()

	head := make([]byte, 2, 14)
	head[0] = opcode
	if fin {
		head[0] |= 0x80
	}
	switch {
	case len(payload) <= 125:
		head[1] = 0x80 | byte(len(payload))
	case len(payload) <= 0xFFFF:
		head[1] = 0x80 | 126
		head = binary.BigEndian.AppendUint16(head, uint16(len(payload)))
	default:
		head[1] = 0x80 | 127
		head = binary.BigEndian.AppendUint64(head, uint64(len(payload)))
	}

	maskKey := [4]byte{0x11, 0x22, 0x33, 0x44}
	head = append(head, maskKey[:]...)

	masked := make([]byte, len(payload))
	for i, b := range payload {
		masked[i] = b ^ maskKey[i%4]
	}

	if _, err := w.Write(head); err != nil {
		t.Fatal(err)
	}
	if len(masked) == 0 {
		// A zero-length Write on net.Pipe blocks until the peer Reads, but
		// an empty payload never triggers a Read on the other side.
		return
	}
	if _, err := w.Write(masked); err != nil {
		t.Fatal(err)
	}
}

func readServerFrame(t *testing.T, br *bufio.Reader) (byte, []byte) {
	t.Helper()

	var head [2]byte
	if _, err := io.ReadFull(br, head[:]); err != nil {
		t.Fatal(err)
	}
	if head[1]&0x80 != 0 {
		t.Fatal("server frames must not be masked")
	}

	length := int64(head[1] & 0x7F)
	switch length {
	case 126:
		var ext [2]byte
		if _, err := io.ReadFull(br, ext[:]); err != nil {
			t.Fatal(err)
		}
		length = int64(binary.BigEndian.Uint16(ext[:]))
	case 127:
		var ext [8]byte
		if _, err := io.ReadFull(br, ext[:]); err != nil {
			t.Fatal(err)
		}
		length = int64(binary.BigEndian.Uint64(ext[:]))
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(br, payload); err != nil {
		t.Fatal(err)
	}
	return head[0] & 0x0F, payload
}

func runEchoSession(t *testing.T) (client net.Conn, disconnected chan struct{}) {
	t.Helper()

	echo := Handler{
		OnText: func(s *Session, msg string) {
			s.WriteText(msg)
		},
		OnBinary: func(s *Session, payload []byte) {
			s.WriteBinary(payload)
		},
		OnDisconnect: func(s *Session) {
			close(disconnected)
		},
	}
	disconnected = make(chan struct{})

	resp := Upgrade(upgradeRequest(), echo)
	if resp.Takeover == nil {
		t.Fatal("expected takeover action")
	}

	server, clientSide := net.Pipe()
	go resp.Takeover(server)
	t.Cleanup(func() { clientSide.Close() })
	return clientSide, disconnected
}

func TestSessionEchoText(t *testing.T) {
	client, _ := runEchoSession(t)
	br := bufio.NewReader(client)

	writeClientFrame(t, client, true, opText, []byte("hello"))

	opcode, payload := readServerFrame(t, br)
	if opcode != opText {
		t.Errorf("expected text frame, got opcode %x", opcode)
	}
	if string(payload) != "hello" {
		t.Errorf("expected hello, got %q", payload)
	}
}

func TestSessionEchoFragmentedBinary(t *testing.T) {
	client, _ := runEchoSession(t)
	br := bufio.NewReader(client)

	writeClientFrame(t, client, false, opBinary, []byte{1, 2})
	writeClientFrame(t, client, true, opContinuation, []byte{3, 4})

	opcode, payload := readServerFrame(t, br)
	if opcode != opBinary {
		t.Errorf("expected binary frame, got opcode %x", opcode)
	}
	if len(payload) != 4 || payload[0] != 1 || payload[3] != 4 {
		t.Errorf("expected reassembled payload, got %v", payload)
	}
}

func TestSessionAnswersPing(t *testing.T) {
	client, _ := runEchoSession(t)
	br := bufio.NewReader(client)

	writeClientFrame(t, client, true, opPing, []byte("ping"))

	opcode, payload := readServerFrame(t, br)
	if opcode != opPong {
		t.Errorf("expected pong, got opcode %x", opcode)
	}
	if string(payload) != "ping" {
		t.Errorf("expected ping payload echoed, got %q", payload)
	}
}

func TestSessionCloseHandshake(t *testing.T) {
	client, disconnected := runEchoSession(t)
	br := bufio.NewReader(client)

	writeClientFrame(t, client, true, opClose, nil)

	opcode, _ := readServerFrame(t, br)
	if opcode != opClose {
		t.Errorf("expected close echo, got opcode %x", opcode)
	}

	select {
	case <-disconnected:
	case <-time.After(time.Second):
		t.Fatal("session did not end after close")
	}
}

func TestFrameRejectsUnmasked(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	go func() {
		// Unmasked client text frame.
		client.Write([]byte{0x81, 0x01, 'x'})
	}()

	if _, err := readFrame(bufio.NewReader(server)); err != ErrUnmaskedFrame {
		t.Errorf("expected ErrUnmaskedFrame, got %v", err)
	}
}

func TestFrameRejectsNegativeExtendedLength(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	go func() {
		// Masked text frame whose 64-bit extended length has the high bit
		// set: negative once narrowed to a signed type.
		head := []byte{0x81, 0x80 | 127}
		head = binary.BigEndian.AppendUint64(head, uint64(1)<<63|1)
		head = append(head, 0x11, 0x22, 0x33, 0x44)
		client.Write(head)
	}()

	if _, err := readFrame(bufio.NewReader(server)); err != ErrFrameTooLarge {
		t.Errorf("expected ErrFrameTooLarge, got %v", err)
	}
}

func TestUpgradeWithPipelinedFirstFrame(t *testing.T) {
	echo := Handler{
		OnText: func(s *Session, msg string) {
			s.WriteText(msg)
		},
	}

	srv := http.NewServer("ws")
	srv.Router.GET("/echo", func(req *http.Request) http.Response {
		return Upgrade(req, echo)
	})
	if err := srv.Start(0, false); err != nil {
		t.Fatal(err)
	}
	defer srv.Stop()

	port, err := srv.Port()
	if err != nil {
		t.Fatal(err)
	}
	conn, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	// Handshake and the first frame in a single write, so the frame bytes
	// arrive buffered alongside the request head.
	var buf bytes.Buffer
	buf.WriteString("GET /echo HTTP/1.1\r\nHost: localhost\r\n" +
		"Upgrade: websocket\r\nConnection: Upgrade\r\n" +
		"Sec-WebSocket-Key: dGhlIHNhbXBsZSBub25jZQ==\r\n" +
		"Sec-WebSocket-Version: 13\r\n\r\n")
	writeClientFrame(t, &buf, true, opText, []byte("early"))
	if _, err := conn.Write(buf.Bytes()); err != nil {
		t.Fatal(err)
	}

	br := bufio.NewReader(conn)
	resp, err := nethttp.ReadResponse(br, &nethttp.Request{Method: "GET"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 101 {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	opcode, payload := readServerFrame(t, br)
	if opcode != opText {
		t.Errorf("expected text echo, got opcode %x", opcode)
	}
	if string(payload) != "early" {
		t.Errorf("expected early frame echoed back, got %q", payload)
	}
}

func TestFrameRejectsOversize(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	go func() {
		head := []byte{0x82, 0x80 | 127}
		head = binary.BigEndian.AppendUint64(head, uint64(MaxFramePayload+1))
		client.Write(head)
	}()

	if _, err := readFrame(bufio.NewReader(server)); err != ErrFrameTooLarge {
		t.Errorf("expected ErrFrameTooLarge, got %v", err)
	}
}
