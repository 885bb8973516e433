package http

// Router is a linear-scan route table implementing the server's dispatch
// hook. Patterns support ":name" parameters and a trailing "*" wildcard.
type Router struct {
	Routes     []Route
	Middleware []Middleware
}

func NewRouter() *Router {
	return &Router{
		Routes: make([]Route, 0),
	}
}

func (router *Router) GET(path string, handler Handler, middleware ...Middleware) {
	router.Any([]string{"GET"}, path, handler, middleware...)
}

func (router *Router) HEAD(path string, handler Handler, middleware ...Middleware) {
	router.Any([]string{"HEAD"}, path, handler, middleware...)
}

func (router *Router) POST(path string, handler Handler, middleware ...Middleware) {
	router.Any([]string{"POST"}, path, handler, middleware...)
}

func (router *Router) PUT(path string, handler Handler, middleware ...Middleware) {
	router.Any([]string{"PUT"}, path, handler, middleware...)
}

func (router *Router) PATCH(path string, handler Handler, middleware ...Middleware) {
	router.Any([]string{"PATCH"}, path, handler, middleware...)
}

func (router *Router) DELETE(path string, handler Handler, middleware ...Middleware) {
	router.Any([]string{"DELETE"}, path, handler, middleware...)
}

func (router *Router) Any(methods []string, path string, handler Handler, middleware ...Middleware) {
	for _, middleware := range middleware {
		handler = middleware(handler)
	}

	router.Routes = append(router.Routes, Route{
		Methods: methods,
		Path:    path,
		Handler: handler,
	})
}

// Group registers routes under a shared path prefix and middleware list.
func (router *Router) Group(path string, groupFunc func(group *Router), middlewareList ...Middleware) {
	group := NewRouter()

	groupFunc(group)

	for _, route := range group.Routes {
		route.Path = path + route.Path
		for _, middleware := range middlewareList {
			route.Handler = middleware(route.Handler)
		}

		router.Routes = append(router.Routes, route)
	}
}

// Dispatch resolves req to its route parameters and handler; unmatched
// requests get empty parameters and NotFoundHandler. Router-level middleware
// wraps every dispatched handler, the fallback included.
func (router *Router) Dispatch(req *Request) (map[string]string, Handler) {
	params, handler := router.match(req)

	for i := len(router.Middleware) - 1; i >= 0; i-- {
		handler = router.Middleware[i](handler)
	}
	return params, handler
}

func (router *Router) match(req *Request) (map[string]string, Handler) {
	for _, route := range router.Routes {
		params, ok := matchPath(route.Path, req.Path)
		if !ok {
			continue
		}

		for _, method := range route.Methods {
			if method == req.Method {
				return params, route.Handler
			}
		}
	}

	return map[string]string{}, NotFoundHandler
}
