// Package http implements a small embeddable HTTP/1.1 server over raw TCP
// sockets: an accept loop, a per-connection request/response loop with
// keep-alive, response body streaming with a whole-file transfer path, and
// protocol takeover for connection upgrades.
package http

const (
	DefaultReadBufferSize  = 4 * 1024
	DefaultWriteBufferSize = 4 * 1024

	// CopyBufferSize is the chunk size of the buffered file transfer loop and
	// of each kernel-assisted transfer call.
	CopyBufferSize = 64 * 1024
)

const protocolVersion = "HTTP/1.1"

// Handler produces the response for one request. Handlers run synchronously
// inside the connection's task.
type Handler func(req *Request) Response

// DispatchFunc resolves a request to its route parameters and its handler.
type DispatchFunc func(req *Request) (map[string]string, Handler)

// NotFoundHandler is the fallback when no route matches.
var NotFoundHandler Handler = func(req *Request) Response {
	return NewResponse(StatusNotFound).WithText("not found")
}

func defaultDispatch(req *Request) (map[string]string, Handler) {
	return map[string]string{}, NotFoundHandler
}
