package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rusenback/docker-gateway/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityHeadersOnEveryStatus(t *testing.T) {
	ts := newTestServer(t, webRuntime(), nil)

	requests := []struct {
		name   string
		method string
		path   string
		host   string
		status int
	}{
		{"ok", http.MethodGet, "/containers", "localhost", http.StatusOK},
		{"not found", http.MethodGet, "/nope", "localhost", http.StatusNotFound},
		{"validation", http.MethodPost, "/containers/xyz/start", "localhost", http.StatusUnprocessableEntity},
		{"bad host", http.MethodGet, "/containers", "evil.example", http.StatusBadRequest},
		{"method", http.MethodPut, "/containers", "localhost", http.StatusMethodNotAllowed},
	}

	for _, tt := range requests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(tt.method, tt.path, "Host", tt.host)

			require.Equal(t, tt.status, w.Code)
			for name, value := range SecurityHeaders {
				assert.Equal(t, value, w.Header().Get(name), name)
			}
		})
	}
}

func TestSecurityHeadersDoNotOverrideHandler(t *testing.T) {
	h := securityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestSecurityHeadersWithoutExplicitWrite(t *testing.T) {
	h := securityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestTrustedHosts(t *testing.T) {
	ts := newTestServer(t, webRuntime(), func(c *config.Config) {
		c.AllowedHosts = []string{"localhost", "127.0.0.1", "*.example.com"}
	})

	tests := []struct {
		host string
		want int
	}{
		{"localhost", http.StatusOK},
		{"localhost:8000", http.StatusOK},
		{"127.0.0.1:8000", http.StatusOK},
		{"docker.example.com", http.StatusOK},
		{"LOCALHOST", http.StatusOK},
		{"example.com", http.StatusBadRequest},
		{"evil.com", http.StatusBadRequest},
		{"localhost.evil.com", http.StatusBadRequest},
		{"[::1]:8000", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			w := ts.do(http.MethodGet, "/containers", "Host", tt.host)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusBadRequest {
				assert.Equal(t, "Invalid host header", body(t, w))
			}
		})
	}
}

func TestTrustedHostsDisabled(t *testing.T) {
	for _, hosts := range [][]string{nil, {"*"}} {
		ts := newTestServer(t, webRuntime(), func(c *config.Config) { c.AllowedHosts = hosts })

		w := ts.do(http.MethodGet, "/containers", "Host", "anything.example")
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestCORSWildcardNeverAllowsCredentials(t *testing.T) {
	ts := newTestServer(t, webRuntime(), func(c *config.Config) {
		c.AllowedOrigins = []string{"https://a.example", "*"}
	})

	w := ts.do(http.MethodGet, "/containers", "Origin", "https://anywhere.example")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))

	pre := ts.do(http.MethodOptions, "/containers/"+testID+"/start",
		"Origin", "https://anywhere.example",
		"Access-Control-Request-Method", http.MethodPost)
	assert.Equal(t, "*", pre.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, pre.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSExplicitOrigins(t *testing.T) {
	ts := newTestServer(t, webRuntime(), func(c *config.Config) {
		c.AllowedOrigins = []string{"https://dash.example"}
	})

	w := ts.do(http.MethodGet, "/containers", "Origin", "https://dash.example")
	assert.Equal(t, "https://dash.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = ts.do(http.MethodGet, "/containers", "Origin", "https://other.example")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))

	pre := ts.do(http.MethodOptions, "/containers/"+testID+"/stop",
		"Origin", "https://dash.example",
		"Access-Control-Request-Method", http.MethodPost)
	assert.True(t, pre.Code >= 200 && pre.Code < 300, "preflight status %d", pre.Code)
	assert.Equal(t, "https://dash.example", pre.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", pre.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "600", pre.Header().Get("Access-Control-Max-Age"))
}

func TestCORSDisabledByDefault(t *testing.T) {
	ts := newTestServer(t, webRuntime(), nil)

	w := ts.do(http.MethodGet, "/containers", "Origin", "https://dash.example")

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t, webRuntime(), nil)

	w := ts.do(http.MethodGet, "/healthz", "X-Request-ID", "abc-123")
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Contains(t, ts.logs.String(), "request_id=abc-123")

	w = ts.do(http.MethodGet, "/healthz", "X-Request-ID", "has spaces")
	generated := w.Header().Get("X-Request-ID")
	assert.Len(t, generated, 36)
	assert.NotEqual(t, "has spaces", generated)
}

func TestAccessLog(t *testing.T) {
	ts := newTestServer(t, webRuntime(), nil)

	ts.do(http.MethodGet, "/containers")

	logs := ts.logs.String()
	assert.Contains(t, logs, "msg=request")
	assert.Contains(t, logs, "path=/containers")
	assert.Contains(t, logs, "status=200")
}

func TestRootPathPrefix(t *testing.T) {
	ts := newTestServer(t, webRuntime(), func(c *config.Config) { c.RootPath = "/dockers" })

	for _, path := range []string{"/dockers/containers", "/containers"} {
		w := ts.do(http.MethodGet, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := ts.do(http.MethodGet, "/dockersx/containers")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHostAllowed(t *testing.T) {
	assert.True(t, hostAllowed([]string{"::1"}, "[::1]:8000"))
	assert.False(t, hostAllowed([]string{"localhost"}, ""))
	assert.False(t, hostAllowed([]string{"*.example.com"}, "example.com"))
}
