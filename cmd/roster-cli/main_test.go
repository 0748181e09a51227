package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/roster"
	"github.com/sagarc03/roster/clientcli"
	rosterhttp "github.com/sagarc03/roster/http"
	"github.com/sagarc03/roster/memstore"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	kinds := roster.DefaultKinds()
	store, err := memstore.New(kinds, roster.IDSequence)
	require.NoError(t, err)
	service, err := roster.NewRosterService(store, kinds)
	require.NoError(t, err)

	handler := rosterhttp.NewHandler(&rosterhttp.HandlerConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, service)

	server := httptest.NewServer(handler.Router())
	t.Cleanup(server.Close)
	return server
}

// resetFlags clears package flag state left by earlier executions.
func resetFlags(t *testing.T) {
	t.Helper()
	cfgFile, profileName, server, kindFlag = "", "", "", ""
	jsonOutput, quiet = false, false
	createData, updateData = "", ""

	t.Setenv("ROSTER_ENDPOINT", "")
	t.Setenv("ROSTER_PROFILE", "")
	t.Setenv("ROSTER_KIND", "")
	t.Setenv("ROSTER_OUTPUT", "")
	t.Setenv("ROSTER_CLIENT_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBuildConfig(t *testing.T) {
	writeProfiles := func(t *testing.T) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.yaml")
		file := &clientcli.ConfigFile{Profiles: []clientcli.Profile{
			{Name: "local", Endpoint: "http://localhost:3000"},
			{Name: "staging", Endpoint: "https://staging.example.com", Kind: "cars", Output: clientcli.OutputJSON, Default: true},
		}}
		require.NoError(t, file.Save(path))
		return path
	}

	t.Run("default profile", func(t *testing.T) {
		resetFlags(t)
		cfgFile = writeProfiles(t)

		cfg, err := buildConfig()
		require.NoError(t, err)
		assert.Equal(t, "https://staging.example.com", cfg.Endpoint)
		assert.Equal(t, "cars", cfg.Kind)
		assert.True(t, cfg.JSONOutput())
	})

	t.Run("kind and output from env override profile", func(t *testing.T) {
		resetFlags(t)
		cfgFile = writeProfiles(t)
		t.Setenv("ROSTER_KIND", "users")
		t.Setenv("ROSTER_OUTPUT", "table")

		cfg, err := buildConfig()
		require.NoError(t, err)
		assert.Equal(t, "users", cfg.Kind)
		assert.False(t, cfg.JSONOutput())
	})

	t.Run("kind and json flags override env", func(t *testing.T) {
		resetFlags(t)
		t.Setenv("ROSTER_KIND", "users")
		t.Setenv("ROSTER_OUTPUT", "table")
		kindFlag = "cars"
		jsonOutput = true

		cfg, err := buildConfig()
		require.NoError(t, err)
		assert.Equal(t, "cars", cfg.Kind)
		assert.True(t, cfg.JSONOutput())
	})

	t.Run("named profile", func(t *testing.T) {
		resetFlags(t)
		cfgFile = writeProfiles(t)
		profileName = "local"

		cfg, err := buildConfig()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3000", cfg.Endpoint)
		assert.Empty(t, cfg.Kind)
	})

	t.Run("profile from env", func(t *testing.T) {
		resetFlags(t)
		t.Setenv("ROSTER_CLIENT_CONFIG", writeProfiles(t))
		t.Setenv("ROSTER_PROFILE", "local")

		cfg, err := buildConfig()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3000", cfg.Endpoint)
	})

	t.Run("unknown profile", func(t *testing.T) {
		resetFlags(t)
		cfgFile = writeProfiles(t)
		profileName = "missing"

		_, err := buildConfig()
		assert.ErrorIs(t, err, clientcli.ErrProfileNotFound)
	})

	t.Run("env overrides profile", func(t *testing.T) {
		resetFlags(t)
		cfgFile = writeProfiles(t)
		t.Setenv("ROSTER_ENDPOINT", "http://env:3000")

		cfg, err := buildConfig()
		require.NoError(t, err)
		assert.Equal(t, "http://env:3000", cfg.Endpoint)
	})

	t.Run("flag overrides env", func(t *testing.T) {
		resetFlags(t)
		t.Setenv("ROSTER_ENDPOINT", "http://env:3000")
		server = "http://flag:3000"

		cfg, err := buildConfig()
		require.NoError(t, err)
		assert.Equal(t, "http://flag:3000", cfg.Endpoint)
	})

	t.Run("missing default file is ignored", func(t *testing.T) {
		resetFlags(t)

		cfg, err := buildConfig()
		require.NoError(t, err)
		assert.Empty(t, cfg.Endpoint)
	})

	t.Run("missing explicit file fails", func(t *testing.T) {
		resetFlags(t)
		cfgFile = filepath.Join(t.TempDir(), "missing.yaml")

		_, err := buildConfig()
		assert.Error(t, err)
	})
}

func TestCommands(t *testing.T) {
	srv := newTestServer(t)

	t.Run("list", func(t *testing.T) {
		out, err := execute(t, "list", "users", "--server", srv.URL)
		require.NoError(t, err)
		assert.Contains(t, out, "John Doe")
		assert.Contains(t, out, "2 record(s)")
	})

	t.Run("create with assignments", func(t *testing.T) {
		out, err := execute(t, "create", "users", "name=Ann Lee", "email=ann@example.com", "--server", srv.URL, "--json")
		require.NoError(t, err)

		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &rec))
		assert.InDelta(t, 3, rec["id"], 0)
		assert.Equal(t, "Ann Lee", rec["name"])
	})

	t.Run("create with data", func(t *testing.T) {
		out, err := execute(t, "create", "cars", "--data", `{"name":"Mazda","model":"3","year":2021}`, "--server", srv.URL, "-q")
		require.NoError(t, err)
		assert.Equal(t, "3\n", out)
	})

	t.Run("create with both inputs", func(t *testing.T) {
		_, err := execute(t, "create", "cars", "name=x", "--data", `{}`, "--server", srv.URL)
		assert.Error(t, err)
	})

	t.Run("get", func(t *testing.T) {
		out, err := execute(t, "get", "cars", "3", "--server", srv.URL)
		require.NoError(t, err)
		assert.Contains(t, out, "Mazda")
		assert.Contains(t, out, "2021")
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := execute(t, "get", "cars", "99", "--server", srv.URL)
		require.Error(t, err)
		assert.ErrorIs(t, err, clientcli.ErrNotFound)
		assert.Contains(t, err.Error(), "Car not found")
	})

	t.Run("get invalid id", func(t *testing.T) {
		_, err := execute(t, "get", "cars", "abc", "--server", srv.URL)
		assert.ErrorIs(t, err, clientcli.ErrInvalidID)
	})

	t.Run("update", func(t *testing.T) {
		out, err := execute(t, "update", "users", "1", "name=Changed", "--server", srv.URL)
		require.NoError(t, err)
		assert.Contains(t, out, "Changed")
		assert.Contains(t, out, "john@example.com")
	})

	t.Run("delete reports failures", func(t *testing.T) {
		out, err := execute(t, "delete", "users", "2", "42", "--server", srv.URL)
		var exitErr *exitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 1, exitErr.code)
		assert.Contains(t, out, "Deleted: users/2")
		assert.Contains(t, out, "Error: users/42")
	})

	t.Run("ping", func(t *testing.T) {
		out, err := execute(t, "ping", "--server", srv.URL)
		require.NoError(t, err)
		assert.Contains(t, out, "server is running")
	})
}

func TestConfigureCommands(t *testing.T) {
	t.Run("list without file", func(t *testing.T) {
		out, err := execute(t, "configure", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "No profiles configured.")
	})

	t.Run("set default and show", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		file := &clientcli.ConfigFile{Profiles: []clientcli.Profile{
			{Name: "local", Endpoint: "http://localhost:3000", Default: true},
			{Name: "staging", Endpoint: "https://staging.example.com"},
		}}
		require.NoError(t, file.Save(path))

		out, err := execute(t, "configure", "set-default", "staging", "--config", path)
		require.NoError(t, err)
		assert.Equal(t, "Default profile set to 'staging'.\n", out)

		out, err = execute(t, "configure", "show", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, out, "staging (default)")

		out, err = execute(t, "configure", "list", "--config", path, "--json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"profiles":[
			{"name":"local","endpoint":"http://localhost:3000","default":false},
			{"name":"staging","endpoint":"https://staging.example.com","default":true}
		]}`, out)
	})
}

func TestCommands_DefaultKind(t *testing.T) {
	srv := newTestServer(t)

	t.Run("flag", func(t *testing.T) {
		out, err := execute(t, "get", "2", "--kind", "cars", "--server", srv.URL)
		require.NoError(t, err)
		assert.Contains(t, out, "Honda")
	})

	t.Run("named kind wins over default", func(t *testing.T) {
		out, err := execute(t, "list", "users", "--kind", "cars", "--server", srv.URL)
		require.NoError(t, err)
		assert.Contains(t, out, "John Doe")
	})

	t.Run("env", func(t *testing.T) {
		resetFlags(t)
		t.Setenv("ROSTER_KIND", "users")

		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs([]string{"update", "1", "name=Renamed", "--server", srv.URL, "-q"})
		t.Cleanup(func() {
			rootCmd.SetOut(nil)
			rootCmd.SetArgs(nil)
		})

		require.NoError(t, rootCmd.ExecuteContext(context.Background()))
		assert.Equal(t, "1\n", out.String())
	})

	t.Run("profile kind and output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		file := &clientcli.ConfigFile{Profiles: []clientcli.Profile{
			{Name: "garage", Endpoint: srv.URL, Kind: "cars", Output: clientcli.OutputJSON},
		}}
		require.NoError(t, file.Save(path))

		out, err := execute(t, "list", "--config", path)
		require.NoError(t, err)

		var recs []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &recs))
		require.NotEmpty(t, recs)
		assert.Equal(t, "Toyota", recs[0]["name"])
	})

	t.Run("no kind", func(t *testing.T) {
		_, err := execute(t, "delete", "1", "--server", srv.URL)
		assert.ErrorIs(t, err, clientcli.ErrNoKind)
	})

	t.Run("update without id", func(t *testing.T) {
		_, err := execute(t, "update", "cars", "--server", srv.URL)
		assert.ErrorIs(t, err, clientcli.ErrNoIDs)
	})
}
