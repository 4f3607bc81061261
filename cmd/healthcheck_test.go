package main

import (
	"bytes"
	"escaperoom/internal/config"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func runHealthcheck(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := healthcheckCommand(cfg)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()

	return out.String(), err
}

func testConfig(port int) *config.Config {
	cfg := new(config.Config)
	cfg.Port = port
	cfg.Gates.ProbeTimeout = time.Second

	return cfg
}

func TestLocalURL(t *testing.T) {
	require.Equal(t, "http://127.0.0.1:80/", localURL(80))
	require.Equal(t, "http://127.0.0.1:8080/", localURL(8080))
}

func TestHealthcheck_DefaultURL(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)

			return
		}
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	out, err := runHealthcheck(t, testConfig(port))
	require.NoError(t, err)
	require.EqualValues(t, 1, hits.Load())
	require.Contains(t, out, localURL(port)+": success (200)")
}

func TestHealthcheck_Failures(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(failing.Close)

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	tests := []struct {
		name string
		url  string
	}{
		{name: "bad status", url: failing.URL},
		{name: "connection refused", url: closedURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runHealthcheck(t, testConfig(80), "--url", tt.url)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.url)
		})
	}
}
