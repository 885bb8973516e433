package main

import (
	"log"

	"github.com/alexsup/swifter/http"
)

func main() {
	s := http.NewServer("hello")
	s.Router.GET("/", func(req *http.Request) http.Response {
		return http.NewResponse(http.StatusOK).WithText("hello world")
	})

	log.Fatal(s.ListenAndServe("0.0.0.0:8080"))
}
