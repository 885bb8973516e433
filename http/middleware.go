package http

import "log/slog"

type Middleware func(next Handler) Handler

// RecoverMiddleware turns a handler panic into a 500 response instead of
// tearing down the connection's task.
func RecoverMiddleware(logger *slog.Logger) Middleware {
	return func(next Handler) Handler {
		return func(req *Request) (resp Response) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("handler panic",
						slog.String("path", req.Path),
						slog.Any("panic", r))
					resp = NewResponse(StatusInternalServerError).WithText("something went wrong")
				}
			}()

			return next(req)
		}
	}
}

// LogMiddleware logs one line per dispatched request.
func LogMiddleware(logger *slog.Logger) Middleware {
	return func(next Handler) Handler {
		return func(req *Request) Response {
			resp := next(req)
			logger.Info("request",
				slog.String("method", req.Method),
				slog.String("path", req.Path),
				slog.Int("status", int(resp.Status)))
			return resp
		}
	}
}
