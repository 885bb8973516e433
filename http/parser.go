package http

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RequestParser turns raw bytes from a connection into requests and decides
// whether a request asks to keep the connection alive. The server only
// depends on this interface, so embedders can substitute their own parser.
type RequestParser interface {
	// ReadRequest blocks until a full request head has been read. It returns
	// io.EOF on a cleanly closed stream and an error on malformed input.
	ReadRequest(br *bufio.Reader) (*Request, error)

	// SupportsKeepAlive reports whether the request headers ask for the
	// connection to be kept open.
	SupportsKeepAlive(req *Request) bool
}

// DefaultParser is the built-in HTTP/1.1 request-line and header parser.
type DefaultParser struct{}

func (DefaultParser) ReadRequest(br *bufio.Reader) (*Request, error) {
	requestLine, err := br.ReadString('\n')
	if err != nil {
		return nil, err
	}
	requestLine = strings.TrimSpace(requestLine)
	if requestLine == "" {
		return nil, io.EOF
	}

	parts := strings.Split(requestLine, " ")
	if len(parts) != 3 {
		return nil, fmt.Errorf("http: malformed request line: %q", requestLine)
	}

	req := &Request{
		Method: parts[0],
		Path:   parts[1],
		Proto:  parts[2],
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("http: header read: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		i := strings.Index(line, ":")
		if i < 0 {
			return nil, fmt.Errorf("http: malformed header line: %q", line)
		}
		req.Headers.Add(strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]))
	}

	if v := req.Headers.Get("Content-Length"); v != "" {
		length, err := strconv.ParseInt(v, 10, 64)
		if err != nil || length < 0 {
			return nil, fmt.Errorf("http: invalid Content-Length: %q", v)
		}
		if length > 0 {
			req.Body = io.LimitReader(br, length)
		}
	}

	return req, nil
}

// SupportsKeepAlive follows HTTP/1.1 defaults: 1.1 keeps the connection open
// unless the request says "close", 1.0 only when it says "keep-alive".
func (DefaultParser) SupportsKeepAlive(req *Request) bool {
	switch req.Proto {
	case "HTTP/1.1":
		return !req.Headers.Contains("Connection", "close")
	case "HTTP/1.0":
		return req.Headers.Contains("Connection", "keep-alive")
	default:
		return false
	}
}
