package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/leapstack-labs/esenrich/internal/service"
	"github.com/leapstack-labs/esenrich/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubApplier struct {
	mu   sync.Mutex
	got  []service.Request
	resp service.Response
}

func (s *stubApplier) Apply(_ context.Context, req service.Request) service.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, req)
	return s.resp
}

type panicApplier struct{}

func (panicApplier) Apply(context.Context, service.Request) service.Response {
	panic("boom")
}

func newTestServer(t *testing.T, a Applier) *httptest.Server {
	t.Helper()
	s := New(Config{Applier: a, Logger: testutil.NewTestLogger(t)})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func decodeEnvelope(t *testing.T, body io.Reader) service.Response {
	t.Helper()
	var resp service.Response
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &stubApplier{})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		resp       service.Response
		wantStatus int
		wantOK     bool
		wantCalls  int
	}{
		{
			name:       "success",
			body:       `{"s3Pointer":"ons-bucket/datafile.csv"}`,
			resp:       service.Response{Success: true, Data: `{"a":1}`},
			wantStatus: http.StatusOK,
			wantOK:     true,
			wantCalls:  1,
		},
		{
			name:       "failure envelope is still 200",
			body:       `{"s3Pointer":"ons-bucket/missing.csv"}`,
			resp:       service.Response{Error: "Unable to get datafile s3+input://ons-bucket/missing.csv: not found"},
			wantStatus: http.StatusOK,
			wantCalls:  1,
		},
		{
			name:       "malformed body",
			body:       `{"s3Pointer":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubApplier{resp: tt.resp}
			srv := newTestServer(t, stub)

			resp, err := http.Post(srv.URL+"/apply", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			env := decodeEnvelope(t, resp.Body)
			assert.Equal(t, tt.wantOK, env.Success)
			if tt.wantOK {
				assert.Equal(t, tt.resp.Data, env.Data)
			} else {
				assert.NotEmpty(t, env.Error)
			}
			assert.Len(t, stub.got, tt.wantCalls)
		})
	}
}

func TestApply_PassesPointer(t *testing.T) {
	stub := &stubApplier{resp: service.Response{Success: true}}
	srv := newTestServer(t, stub)

	resp, err := http.Post(srv.URL+"/apply", "application/json", strings.NewReader(`{"s3Pointer":"b/k.csv"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()

	require.Len(t, stub.got, 1)
	assert.Equal(t, "b/k.csv", stub.got[0].S3Pointer)
}

func TestApply_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &stubApplier{})

	resp, err := http.Get(srv.URL + "/apply")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestApply_RecoversPanics(t *testing.T) {
	srv := newTestServer(t, panicApplier{})

	resp, err := http.Post(srv.URL+"/apply", "application/json", strings.NewReader(`{"s3Pointer":"x"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestServeListener_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := New(Config{Applier: &stubApplier{}, Logger: testutil.NewTestLogger(t)})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ServeListener(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{})
	assert.Equal(t, DefaultAddr, s.addr)
	assert.Equal(t, 5*time.Second, s.shutdownTimeout)
	assert.NotNil(t, s.logger)
}
