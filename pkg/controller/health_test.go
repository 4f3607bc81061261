package controller_test

import (
	"escaperoom/pkg/controller"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	controller.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	res := rec.Result()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "ok", rec.Body.String())
	require.Equal(t, "no-store", res.Header.Get("Cache-Control"))
}
