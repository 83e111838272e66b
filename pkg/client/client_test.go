package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/studyhub/studyhub/backend/go-services/pkg/logger"
	"github.com/studyhub/studyhub/backend/go-services/pkg/metrics"
	"github.com/stretchr/testify/require"
)

var errConnRefused = errors.New("dial tcp: connection refused")

// flakyTransport fails the first `failures` round trips with a network error
// and then answers 200 with body.
type flakyTransport struct {
	mu       sync.Mutex
	failures int
	calls    int
	body     string
	auth     []string
}

func (f *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.auth = append(f.auth, req.Header.Get("Authorization"))
	if f.calls <= f.failures {
		return nil, errConnRefused
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Request:    req,
	}, nil
}

type delayRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *delayRecorder) wait(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, d)
	return nil
}

func newFlakyClient(ft *flakyTransport, rec *delayRecorder, opts ...Option) *Client {
	base := []Option{WithHTTPClient(&http.Client{Transport: ft}), WithWait(rec.wait)}
	return New("http://studyhub.test/api", append(base, opts...)...)
}

func TestDo_RetriesNetworkErrorsThenSucceeds(t *testing.T) {
	before := testutil.ToFloat64(metrics.ClientRetries.WithLabelValues("network"))
	ft := &flakyTransport{failures: 3, body: `{"success":true,"message":"Server is running"}`}
	rec := &delayRecorder{}
	c := newFlakyClient(ft, rec)

	env, err := c.Health(context.Background())
	require.NoError(t, err)
	require.True(t, env.Success)
	require.Equal(t, "Server is running", env.Message)
	require.Equal(t, 4, ft.calls)
	require.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, rec.delays)
	require.Equal(t, before+3, testutil.ToFloat64(metrics.ClientRetries.WithLabelValues("network")))
}

func TestDo_GivesUpAfterThreeRetries(t *testing.T) {
	ft := &flakyTransport{failures: 4, body: `{"success":true}`}
	rec := &delayRecorder{}
	c := newFlakyClient(ft, rec)

	_, err := c.Health(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, errConnRefused)
	require.Contains(t, err.Error(), "giving up after 4 attempts")
	require.Equal(t, 4, ft.calls)
	require.Len(t, rec.delays, 3)
}

func TestDo_StatusErrorsAreNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"Server error"}`))
	}))
	defer srv.Close()
	rec := &delayRecorder{}
	c := New(srv.URL+"/api", WithWait(rec.wait))

	_, err := c.ListNotes(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusInternalServerError, se.StatusCode)
	require.Equal(t, "Server error", se.Message)
	require.True(t, IsStatus(err, http.StatusInternalServerError))
	require.Equal(t, 1, calls)
	require.Empty(t, rec.delays)
}

func TestDo_ValidationErrorsAreDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"Validation failed","errors":[{"field":"title","message":"Title is required"}]}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateNote(context.Background(), NoteInput{Content: "c"})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, []FieldError{{Field: "title", Message: "Title is required"}}, se.Errors)
}

func TestDo_AttachesBearerTokenOnEveryAttempt(t *testing.T) {
	ft := &flakyTransport{failures: 1, body: `{"success":true}`}
	n := 0
	tokens := TokenFunc(func(context.Context) (string, error) {
		n++
		return "tok-" + string(rune('0'+n)), nil
	})
	c := newFlakyClient(ft, &delayRecorder{}, WithTokenSource(tokens))

	_, err := c.Health(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Bearer tok-1", "Bearer tok-2"}, ft.auth)
}

func TestDo_NoTokenNoHeader(t *testing.T) {
	ft := &flakyTransport{body: `{"success":true}`}
	c := newFlakyClient(ft, &delayRecorder{}, WithTokenSource(StaticToken("")))
	_, err := c.Health(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{""}, ft.auth)
}

func TestDo_TimeoutIsRetried(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			<-r.Context().Done()
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok"}`))
	}))
	defer srv.Close()

	before := testutil.ToFloat64(metrics.ClientRetries.WithLabelValues("timeout"))
	rec := &delayRecorder{}
	c := New(srv.URL, WithTimeout(100*time.Millisecond), WithWait(rec.wait))
	env, err := c.Health(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", env.Message)
	require.Equal(t, []time.Duration{time.Second}, rec.delays)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.ClientRetries.WithLabelValues("timeout")))
}

func TestDo_CallerCancellationIsTerminal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ft := &flakyTransport{failures: 10}
	c := New("http://studyhub.test", WithHTTPClient(&http.Client{Transport: ft}), WithWait(func(ctx context.Context, d time.Duration) error {
		cancel()
		return sleep(ctx, d)
	}))

	_, err := c.Health(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, ft.calls)
}

func TestDo_DevelopmentModeLogs(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf, true)
	defer logger.SetOutput(os.Stdout, false)

	ft := &flakyTransport{failures: 1, body: `{"success":true}`}
	c := newFlakyClient(ft, &delayRecorder{}, WithDevelopment(true))
	_, err := c.Health(context.Background())
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "API request")
	require.Contains(t, out, "API error")
	require.Contains(t, out, "API retry")
	require.Contains(t, out, "API response")
}
