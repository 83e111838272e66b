package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyhub/studyhub/backend/go-services/internal/config"
	"github.com/studyhub/studyhub/backend/go-services/internal/identity"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "0", Environment: "test", ShutdownTimeout: time.Second},
		CORS:   config.CORSConfig{AllowedOrigins: config.DefaultAllowedOrigins},
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(MemoryDeps(testConfig(), identity.Placeholder()))
}

func request(t *testing.T, h http.Handler, method, path, body string, hdr map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	var out map[string]interface{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestRouter_Health(t *testing.T) {
	w, body := request(t, newTestRouter(), http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, map[string]interface{}{"success": true, "message": "Server is running"}, body)
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_UnknownRoute(t *testing.T) {
	r := newTestRouter()
	for _, path := range []string{"/api/nothing", "/"} {
		w, body := request(t, r, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, "API endpoint not found", body["message"])
		require.Equal(t, false, body["success"])
	}
}

func TestRouter_CORS(t *testing.T) {
	r := newTestRouter()
	w, _ := request(t, r, http.MethodGet, "/api/notes", "", map[string]string{"Origin": "http://localhost:3000"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w, body := request(t, r, http.MethodGet, "/api/notes", "", map[string]string{"Origin": "https://evil.example"})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Not allowed by CORS", body["message"])
}

func TestRouter_PanicIsHidden(t *testing.T) {
	r := newTestRouter()
	r.GET("/api/boom", func(c *gin.Context) { panic("db password is hunter2") })

	w, body := request(t, r, http.MethodGet, "/api/boom", "", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Something went wrong!", body["message"])
	require.NotContains(t, w.Body.String(), "hunter2")
}

func TestRouter_NoteScenario(t *testing.T) {
	r := newTestRouter()
	w, body := request(t, r, http.MethodPost, "/api/notes", `{"title":"T","content":"C"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, true, body["success"])
	n := body["note"].(map[string]interface{})
	require.Equal(t, "T", n["title"])
	require.Equal(t, []interface{}{}, n["tags"])

	w, body = request(t, r, http.MethodGet, "/api/notes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body["notes"], 1)
}

func TestRouter_ReadyWithoutDatabase(t *testing.T) {
	w, _ := request(t, newTestRouter(), http.MethodGet, "/api/ready", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_Metrics(t *testing.T) {
	r := newTestRouter()
	request(t, r, http.MethodGet, "/api/health", "", nil)
	w, _ := request(t, r, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "studyhub_http_requests_total")
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RPS = 0.01
	cfg.RateLimit.Burst = 1
	r := NewRouter(MemoryDeps(cfg, identity.Placeholder()))

	w, _ := request(t, r, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = request(t, r, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestServe_GracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewHTTPServer(testConfig(), newTestRouter())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, srv, ln, time.Second) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}

	_, err = http.Get("http://" + ln.Addr().String() + "/api/health")
	require.Error(t, err)
}

func TestRun_PortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := &http.Server{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}
	err = Run(context.Background(), srv, time.Second)
	require.Error(t, err)
	require.Contains(t, err.Error(), "listen on")
}
