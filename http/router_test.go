package http

import (
	"testing"

	"github.com/alexsup/swifter/test"
)

func okHandler(body string) Handler {
	return func(req *Request) Response {
		return NewResponse(StatusOK).WithText(body)
	}
}

func TestRouterDispatchExact(t *testing.T) {
	router := NewRouter()
	router.GET("/users", okHandler("users"))

	req := &Request{Method: "GET", Path: "/users"}
	params, handler := router.Dispatch(req)

	test.AssertEqual(t, 0, len(params))
	test.AssertEqual(t, StatusOK, handler(req).Status)
}

func TestRouterDispatchParams(t *testing.T) {
	router := NewRouter()
	router.GET("/users/:id/posts/:post", okHandler("post"))

	params, _ := router.Dispatch(&Request{Method: "GET", Path: "/users/42/posts/7"})

	test.AssertEqual(t, "42", params["id"])
	test.AssertEqual(t, "7", params["post"])
}

func TestRouterDispatchWildcard(t *testing.T) {
	router := NewRouter()
	router.GET("/static/*", okHandler("file"))

	params, _ := router.Dispatch(&Request{Method: "GET", Path: "/static/css/site.css"})

	test.AssertEqual(t, "css/site.css", params["*"])
}

func TestRouterDispatchMethodMismatch(t *testing.T) {
	router := NewRouter()
	router.POST("/users", okHandler("created"))

	req := &Request{Method: "GET", Path: "/users"}
	_, handler := router.Dispatch(req)

	test.AssertEqual(t, StatusNotFound, handler(req).Status)
}

func TestRouterDispatchUnmatched(t *testing.T) {
	router := NewRouter()

	req := &Request{Method: "GET", Path: "/missing"}
	params, handler := router.Dispatch(req)

	test.AssertEqual(t, 0, len(params))
	test.AssertEqual(t, StatusNotFound, handler(req).Status)
}

func TestRouterGroup(t *testing.T) {
	router := NewRouter()
	router.Group("/v1", func(group *Router) {
		group.GET("/health", okHandler("ok"))
	})

	req := &Request{Method: "GET", Path: "/v1/health"}
	_, handler := router.Dispatch(req)

	test.AssertEqual(t, StatusOK, handler(req).Status)
}

func TestRouterMiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(req *Request) Response {
				order = append(order, name)
				return next(req)
			}
		}
	}

	router := NewRouter()
	router.Middleware = append(router.Middleware, mark("router"))
	router.GET("/", okHandler("ok"), mark("route"))

	req := &Request{Method: "GET", Path: "/"}
	_, handler := router.Dispatch(req)
	handler(req)

	test.AssertEqual(t, 2, len(order))
	test.AssertEqual(t, "router", order[0])
	test.AssertEqual(t, "route", order[1])
}
