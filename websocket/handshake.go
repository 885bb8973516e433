// Package websocket implements RFC6455 server-side sessions on top of the
// http package's protocol takeover mechanism: the upgrade response carries a
// takeover action that runs the frame loop on the raw socket.
package websocket

import (
	"crypto/sha1"
	"encoding/base64"
	"net"

	"github.com/alexsup/swifter/http"
)

const websocketGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// AcceptKey computes the Sec-WebSocket-Accept value for a client key.
func AcceptKey(key string) string {
	h := sha1.New()
	h.Write([]byte(key + websocketGUID))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Upgrade validates the upgrade request and returns either a 101 response
// whose takeover action runs the session loop with handler, or a 400 when
// the request is not a well-formed websocket upgrade.
func Upgrade(req *http.Request, handler Handler) http.Response {
	if !req.Headers.Contains("Upgrade", "websocket") ||
		!req.Headers.Contains("Connection", "Upgrade") {
		return http.NewResponse(http.StatusBadRequest).WithText("invalid websocket upgrade headers")
	}
	if req.Headers.Get("Sec-WebSocket-Version") != "13" {
		return http.NewResponse(http.StatusBadRequest).WithText("unsupported websocket version")
	}
	key := req.Headers.Get("Sec-WebSocket-Key")
	if key == "" {
		return http.NewResponse(http.StatusBadRequest).WithText("missing Sec-WebSocket-Key")
	}

	resp := http.NewResponse(http.StatusSwitchingProtocols)
	resp.ContentLength = http.ContentLengthUnknown
	resp.Headers.Add("Upgrade", "websocket")
	resp.Headers.Add("Connection", "Upgrade")
	resp.Headers.Add("Sec-WebSocket-Accept", AcceptKey(key))

	return resp.WithTakeover(func(conn net.Conn) {
		newSession(conn).run(handler)
	})
}
