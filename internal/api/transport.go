package api

import (
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// authTransport attaches the bearer token to every request except the
// two auth endpoints, and invalidates the session when a response
// comes back 401. The response is returned to the caller either way;
// invalidation never swallows the failure.
type authTransport struct {
	next http.RoundTripper

	mu      sync.RWMutex
	session Session
}

func (t *authTransport) setSession(s Session) {
	t.mu.Lock()
	t.session = s
	t.mu.Unlock()
}

func isAuthEndpoint(path string) bool {
	// The base URL may carry a path prefix, so the request path can be
	// "/prefix/auth/login" rather than "/auth/login".
	return strings.HasSuffix(path, epLogin) || strings.HasSuffix(path, epRegister)
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.RLock()
	session := t.session
	t.mu.RUnlock()

	if session != nil && !isAuthEndpoint(req.URL.Path) {
		if token := session.Token(); token != "" {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := t.next.RoundTrip(req)

	if err == nil && res.StatusCode == http.StatusUnauthorized &&
		session != nil && !isAuthEndpoint(req.URL.Path) {
		session.Invalidate()
	}

	return res, err
}

// requestIDTransport tags each outgoing request with a fresh
// X-Request-ID for log correlation with the backend.
type requestIDTransport struct {
	next http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-Request-ID", uuid.NewString())
	return t.next.RoundTrip(req)
}

// loadingTransport brackets every request with the in-flight gauge.
// The decrement happens exactly once per request, whether it ends in
// success, an HTTP error or a transport failure.
type loadingTransport struct {
	gauge *Gauge
	next  http.RoundTripper
}

func (t *loadingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.gauge.Add()
	defer t.gauge.Done()
	return t.next.RoundTrip(req)
}
