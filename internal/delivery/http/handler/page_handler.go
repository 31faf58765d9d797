package handler

import (
	"embed"
	"net/http"
)

//go:embed views/*.html
var views embed.FS

// PageHandler serves the HTML documents the browser UI is built from
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Page returns a handler that serves views/<name>
func (h *PageHandler) Page(name string) http.HandlerFunc {
	path := "views/" + name
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		http.ServeFileFS(w, r, views, path)
	}
}
