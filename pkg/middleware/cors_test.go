package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/studyhub/studyhub/backend/go-services/pkg/metrics"
	"github.com/stretchr/testify/require"
)

func TestOriginAllowed(t *testing.T) {
	allowed := []string{"http://localhost:3000", " https://app.example.com ", "*.studyhub.dev"}
	cases := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"http://localhost:3000", true},
		{"https://app.example.com", true},
		{"https://evil.example.com", false},
		{"studyhub.dev", true},
		{"https://a.studyhub.dev", true},
		{"https://deep.a.studyhub.dev", true},
		{"https://notstudyhub.dev", false},
		{"http://localhost:3001", false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, OriginAllowed(tc.origin, allowed), tc.origin)
	}
	require.False(t, OriginAllowed("http://x", nil))
	require.True(t, OriginAllowed("", nil))
}

func newCORSRouter(allowed ...string) *gin.Engine {
	r := gin.New()
	r.Use(CORSMiddleware(allowed))
	r.GET("/api/notes", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) })
	r.OPTIONS("/api/notes", func(c *gin.Context) { c.Status(http.StatusTeapot) })
	return r
}

func withOrigin(origin string) func(*http.Request) {
	return func(req *http.Request) { req.Header.Set("Origin", origin) }
}

func TestCORSMiddleware_AllowedOrigin(t *testing.T) {
	r := newCORSRouter("http://localhost:3000")
	w := serve(r, http.MethodGet, "/api/notes", withOrigin("http://localhost:3000"))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	require.Contains(t, w.Header().Values("Vary"), "Origin")
}

func TestCORSMiddleware_NoOrigin(t *testing.T) {
	r := newCORSRouter("http://localhost:3000")
	w := serve(r, http.MethodGet, "/api/notes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_RejectsUnknownOrigin(t *testing.T) {
	before := testutil.ToFloat64(metrics.CORSRejected)
	r := newCORSRouter("*.example.com")
	w := serve(r, http.MethodGet, "/api/notes", withOrigin("https://example.org"))
	require.Equal(t, http.StatusForbidden, w.Code)
	require.JSONEq(t, `{"success":false,"message":"Not allowed by CORS"}`, w.Body.String())
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, before+1, testutil.ToFloat64(metrics.CORSRejected))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := newCORSRouter("*.example.com")
	w := serve(r, http.MethodOptions, "/api/notes", withOrigin("https://app.example.com"))
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
	require.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
}
