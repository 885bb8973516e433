package http

import (
	"encoding/json"
	"fmt"
	"net"
	"strconv"
)

// ContentLengthUnknown marks a streamed body whose size is not known up
// front. Responses with unknown length are always answered with
// "Connection: close", because the client cannot find the message end
// otherwise.
const ContentLengthUnknown int64 = -1

// Response describes one HTTP response. WriteBody, when set, is invoked
// exactly once with a body writer bound to the connection. Takeover, when
// set, receives the raw socket after the response has been written; the
// server then stops driving the connection.
type Response struct {
	Status  uint16
	Reason  string
	Headers Headers

	// ContentLength is the body size in bytes, or ContentLengthUnknown.
	ContentLength int64

	WriteBody func(w BodyWriter) error

	Takeover func(conn net.Conn)
}

// NewResponse returns an empty response with the given status and no body.
func NewResponse(status uint16) Response {
	return Response{
		Status: status,
		Reason: StatusText(status),
	}
}

// WithHeader appends a header field.
func (resp Response) WithHeader(name, value string) Response {
	resp.Headers.Add(name, value)
	return resp
}

// WithBody sets a fixed byte slice as the response body.
func (resp Response) WithBody(body []byte) Response {
	resp.ContentLength = int64(len(body))
	resp.WriteBody = func(w BodyWriter) error {
		_, err := w.Write(body)
		return err
	}
	return resp
}

// WithText sets a text/plain body.
func (resp Response) WithText(payload string) Response {
	resp.Headers.Set("Content-Type", "text/plain")
	return resp.WithBody([]byte(payload))
}

// WithHTML sets a text/html body.
func (resp Response) WithHTML(payload string) Response {
	resp.Headers.Set("Content-Type", "text/html")
	return resp.WithBody([]byte(payload))
}

// WithJSON encodes payload as the application/json body. Strings are taken
// as pre-encoded JSON.
func (resp Response) WithJSON(payload any) Response {
	resp.Headers.Set("Content-Type", "application/json")

	if s, ok := payload.(string); ok {
		return resp.WithBody([]byte(s))
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		errResp := NewResponse(StatusInternalServerError)
		return errResp.WithText(fmt.Sprintf("json encode: %v", err))
	}
	return resp.WithBody(encoded)
}

// WithStream sets a body of unknown length produced by fn. The connection is
// closed after the response.
func (resp Response) WithStream(fn func(w BodyWriter) error) Response {
	resp.ContentLength = ContentLengthUnknown
	resp.WriteBody = fn
	return resp
}

// WithTakeover attaches a protocol takeover action; after the response is
// written the socket is handed to action and the HTTP loop ends without
// closing it.
func (resp Response) WithTakeover(action func(conn net.Conn)) Response {
	resp.Takeover = action
	return resp
}

// MovedPermanently returns a 301 redirect to location.
func MovedPermanently(location string) Response {
	return NewResponse(StatusMovedPermanently).WithHeader("Location", location)
}

func (resp *Response) lengthKnown() bool {
	return resp.ContentLength >= 0
}

func (resp *Response) statusLine() string {
	reason := resp.Reason
	if reason == "" {
		reason = StatusText(resp.Status)
	}
	return protocolVersion + " " + strconv.Itoa(int(resp.Status)) + " " + reason
}
