package http

const (
	StatusSwitchingProtocols uint16 = 101

	StatusOK        uint16 = 200
	StatusCreated   uint16 = 201
	StatusAccepted  uint16 = 202
	StatusNoContent uint16 = 204

	StatusMovedPermanently uint16 = 301
	StatusFound            uint16 = 302
	StatusNotModified      uint16 = 304

	StatusBadRequest       uint16 = 400
	StatusUnauthorized     uint16 = 401
	StatusForbidden        uint16 = 403
	StatusNotFound         uint16 = 404
	StatusMethodNotAllowed uint16 = 405

	StatusInternalServerError uint16 = 500
	StatusNotImplemented      uint16 = 501
	StatusBadGateway          uint16 = 502
	StatusServiceUnavailable  uint16 = 503
)

// StatusText returns the reason phrase for code, or "Unknown" when the code
// has no registered phrase.
func StatusText(code uint16) string {
	switch code {
	case StatusSwitchingProtocols:
		return "Switching Protocols"
	case StatusOK:
		return "OK"
	case StatusCreated:
		return "Created"
	case StatusAccepted:
		return "Accepted"
	case StatusNoContent:
		return "No Content"
	case StatusMovedPermanently:
		return "Moved Permanently"
	case StatusFound:
		return "Found"
	case StatusNotModified:
		return "Not Modified"
	case StatusBadRequest:
		return "Bad Request"
	case StatusUnauthorized:
		return "Unauthorized"
	case StatusForbidden:
		return "Forbidden"
	case StatusNotFound:
		return "Not Found"
	case StatusMethodNotAllowed:
		return "Method Not Allowed"
	case StatusInternalServerError:
		return "Internal Server Error"
	case StatusNotImplemented:
		return "Not Implemented"
	case StatusBadGateway:
		return "Bad Gateway"
	case StatusServiceUnavailable:
		return "Service Unavailable"
	default:
		return "Unknown"
	}
}
