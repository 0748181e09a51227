package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/roster"
	"github.com/sagarc03/roster/clientcli"
)

type response struct {
	status      int
	contentType string
	body        []byte
}

func send(t *testing.T, method, url, body string) response {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return response{status: resp.StatusCode, contentType: resp.Header.Get("Content-Type"), body: data}
}

// TestE2E_BasicCRUD tests the full CRUD lifecycle over the wire.
func TestE2E_BasicCRUD(t *testing.T) {
	baseURL := startServer(t, serverOptions{})

	t.Run("GET /users returns seed", func(t *testing.T) {
		resp := send(t, http.MethodGet, baseURL+"/users", "")
		assert.Equal(t, http.StatusOK, resp.status)
		assert.Contains(t, resp.contentType, "application/json")
		assert.JSONEq(t, `[
			{"id":1,"name":"John Doe","email":"john@example.com"},
			{"id":2,"name":"Jane Smith","email":"jane@example.com"}
		]`, string(resp.body))
	})

	t.Run("POST /users creates", func(t *testing.T) {
		resp := send(t, http.MethodPost, baseURL+"/users", `{"name":"A","email":"a@x.com"}`)
		assert.Equal(t, http.StatusCreated, resp.status)
		assert.Equal(t, `{"id":3,"name":"A","email":"a@x.com"}`, strings.TrimSpace(string(resp.body)))
	})

	t.Run("PUT /users/1 merges", func(t *testing.T) {
		resp := send(t, http.MethodPut, baseURL+"/users/1", `{"name":"Changed"}`)
		assert.Equal(t, http.StatusOK, resp.status)
		assert.JSONEq(t, `{"id":1,"name":"Changed","email":"john@example.com"}`, string(resp.body))
	})

	t.Run("PUT cannot change id", func(t *testing.T) {
		resp := send(t, http.MethodPut, baseURL+"/users/1", `{"id":99}`)
		assert.Equal(t, http.StatusOK, resp.status)
		assert.JSONEq(t, `{"id":1,"name":"Changed","email":"john@example.com"}`, string(resp.body))
	})

	t.Run("DELETE /users/2", func(t *testing.T) {
		resp := send(t, http.MethodDelete, baseURL+"/users/2", "")
		assert.Equal(t, http.StatusNoContent, resp.status)
		assert.Empty(t, resp.body)

		resp = send(t, http.MethodGet, baseURL+"/users/2", "")
		assert.Equal(t, http.StatusNotFound, resp.status)
		assert.JSONEq(t, `{"message":"user not found"}`, string(resp.body))
	})

	t.Run("GET /cars/99", func(t *testing.T) {
		resp := send(t, http.MethodGet, baseURL+"/cars/99", "")
		assert.Equal(t, http.StatusNotFound, resp.status)
		assert.JSONEq(t, `{"message":"Car not found"}`, string(resp.body))
	})

	t.Run("invalid JSON", func(t *testing.T) {
		resp := send(t, http.MethodPost, baseURL+"/cars", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, resp.status)
		assert.JSONEq(t, `{"message":"Invalid JSON"}`, string(resp.body))
	})

	t.Run("unknown path", func(t *testing.T) {
		resp := send(t, http.MethodGet, baseURL+"/anything/else", "")
		assert.Equal(t, http.StatusOK, resp.status)
		assert.Contains(t, resp.contentType, "text/plain")
		assert.Equal(t, "server is running", string(resp.body))
	})

	t.Run("unmatched route under a kind", func(t *testing.T) {
		resp := send(t, http.MethodPatch, baseURL+"/users/1", `{}`)
		assert.Equal(t, http.StatusNotFound, resp.status)
		assert.JSONEq(t, `{"message":"Route not found"}`, string(resp.body))
	})
}

// TestE2E_IDStrategies checks id assignment after a delete.
func TestE2E_IDStrategies(t *testing.T) {
	tests := []struct {
		strategy string
		wantID   int
	}{
		{strategy: "sequence", wantID: 3},
		{strategy: "length", wantID: 2},
	}

	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			baseURL := startServer(t, serverOptions{IDStrategy: tt.strategy})

			resp := send(t, http.MethodDelete, baseURL+"/cars/1", "")
			require.Equal(t, http.StatusNoContent, resp.status)

			resp = send(t, http.MethodPost, baseURL+"/cars", `{"name":"Mazda","model":"3"}`)
			require.Equal(t, http.StatusCreated, resp.status)

			var rec roster.Record
			require.NoError(t, json.Unmarshal(resp.body, &rec))
			assert.Equal(t, tt.wantID, rec.ID)
		})
	}
}

// TestE2E_Resources checks that only enabled kinds get routes.
func TestE2E_Resources(t *testing.T) {
	baseURL := startServer(t, serverOptions{Resources: []string{"cars"}})

	resp := send(t, http.MethodGet, baseURL+"/cars", "")
	assert.Equal(t, http.StatusOK, resp.status)

	resp = send(t, http.MethodGet, baseURL+"/users", "")
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "server is running", string(resp.body))
}

// TestE2E_BodyLimit checks that oversized bodies are rejected.
func TestE2E_BodyLimit(t *testing.T) {
	baseURL := startServer(t, serverOptions{MaxBody: 64})

	body := fmt.Sprintf(`{"name":%q}`, strings.Repeat("x", 128))
	resp := send(t, http.MethodPost, baseURL+"/users", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.status)
	assert.JSONEq(t, `{"message":"Request body too large"}`, string(resp.body))
}

// TestE2E_PortEnv checks that a bare PORT variable picks the listen port.
func TestE2E_PortEnv(t *testing.T) {
	port := freePort(t)
	baseURL := startServer(t, serverOptions{
		Port:         port,
		NoConfigPort: true,
		Env:          []string{fmt.Sprintf("PORT=%d", port)},
	})

	resp := send(t, http.MethodGet, baseURL+"/", "")
	assert.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "server is running", string(resp.body))
}

// TestE2E_Client drives the server through the client library.
func TestE2E_Client(t *testing.T) {
	baseURL := startServer(t, serverOptions{})

	client, err := clientcli.New(&clientcli.Config{Endpoint: baseURL})
	require.NoError(t, err)

	ctx := context.Background()

	ping, err := client.Ping(ctx)
	require.NoError(t, err)
	assert.Equal(t, "server is running", ping.Message)

	created, err := client.Create(ctx, "cars", roster.Fields{"name": "Mazda", "model": "3", "year": 2021})
	require.NoError(t, err)
	assert.Equal(t, 3, created.ID)
	assert.Equal(t, json.Number("2021"), created.Fields["year"])

	updated, err := client.Update(ctx, "cars", created.ID, roster.Fields{"model": "CX-5"})
	require.NoError(t, err)
	assert.Equal(t, "CX-5", updated.String("model"))
	assert.Equal(t, []string{"name", "model", "year"}, updated.Keys())

	records, err := client.List(ctx, "cars")
	require.NoError(t, err)
	require.Len(t, records, 3)

	var out bytes.Buffer
	require.NoError(t, clientcli.NewFormatter(false, false).FormatRecords(&out, "cars", records))
	assert.Contains(t, out.String(), "CX-5")

	results, err := client.Delete(ctx, clientcli.DeleteOptions{Kind: "cars", IDs: []int{created.ID, created.ID}})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Deleted)
	assert.ErrorIs(t, results[1].Err, clientcli.ErrNotFound)

	_, err = client.Get(ctx, "cars", created.ID)
	assert.ErrorIs(t, err, clientcli.ErrNotFound)
}

func TestWaitReady(t *testing.T) {
	t.Run("waits for the running message", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			switch calls.Add(1) {
			case 1:
				w.WriteHeader(http.StatusServiceUnavailable)
			case 2:
				_, _ = io.WriteString(w, "starting")
			default:
				_, _ = io.WriteString(w, "server is running")
			}
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		require.NoError(t, waitReady(ctx, srv.URL, nil))
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("other server on the port", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
		defer cancel()

		err := waitReady(ctx, srv.URL, nil)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "got 404")
	})

	t.Run("process exited", func(t *testing.T) {
		exited := make(chan error, 1)
		exited <- errors.New("exit status 1")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := waitReady(ctx, "http://localhost:"+strconv.Itoa(freePort(t)), exited)
		assert.ErrorContains(t, err, "exited before ready")
	})
}
