package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/roster/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("PORT", "")
	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)
	return cfg
}

func TestNewHandler(t *testing.T) {
	cfg := testConfig(t)
	cfg.Resources.Enabled = []string{"cars"}

	handler, err := newHandler(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(handler.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/cars/1")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Disabled kinds fall through to the liveness text.
	resp, err = http.Get(srv.URL + "/users/1")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain"))
}

func TestNewHandler_UnknownResource(t *testing.T) {
	cfg := testConfig(t)
	cfg.Resources.Enabled = []string{"boats"}

	_, err := newHandler(cfg)
	assert.Error(t, err)
}

func TestNewServer(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Port = 4123
	cfg.Server.ReadTimeout = 2 * time.Second

	server := newServer(cfg, http.NotFoundHandler())

	assert.Equal(t, ":4123", server.Addr)
	assert.Equal(t, 2*time.Second, server.ReadTimeout)
	assert.Equal(t, cfg.Server.IdleTimeout, server.IdleTimeout)
}

func TestRoutesCommand(t *testing.T) {
	t.Setenv("PORT", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"routes", "--resources", "users"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "METHOD")
	assert.Contains(t, out.String(), "/users/{id}")
	assert.NotContains(t, out.String(), "/cars")
}

func TestKindsCommand(t *testing.T) {
	t.Setenv("PORT", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"kinds"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "users")
	assert.Contains(t, out.String(), "name,model")
	assert.Contains(t, out.String(), "Car")
}
