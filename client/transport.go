package client

import (
	"net/http"

	"github.com/google/uuid"
)

// transport injects auth and diagnostic headers on every outbound
// request.
type transport struct {
	token     string
	userAgent string
	base      http.RoundTripper
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.token)
	clone.Header.Set("Accept", "application/json")
	clone.Header.Set("User-Agent", t.userAgent)
	if clone.Header.Get("X-Request-ID") == "" {
		clone.Header.Set("X-Request-ID", uuid.NewString())
	}
	return t.base.RoundTrip(clone)
}
