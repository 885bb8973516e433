package http

import "io"

// Request is one parsed HTTP request. Headers keep the order and casing they
// arrived with. Params is populated by the dispatch hook after routing.
type Request struct {
	Method  string
	Path    string
	Proto   string
	Headers Headers

	// Body is bounded by the request's Content-Length. Nil when the request
	// carries no body.
	Body io.Reader

	// RemoteAddr is resolved once per connection.
	RemoteAddr string

	Params map[string]string
}

// Param returns the route parameter captured under name, or "".
func (req *Request) Param(name string) string {
	return req.Params[name]
}

func (req *Request) drainBody() {
	if req.Body != nil {
		io.Copy(io.Discard, req.Body)
	}
}
