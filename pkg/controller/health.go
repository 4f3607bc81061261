package controller

import (
	"io"
	"net/http"
)

// Healthz answers liveness probes with 200 "ok". It does not evaluate any
// level: a failing puzzle is not an unhealthy server.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = io.WriteString(w, "ok")
}
