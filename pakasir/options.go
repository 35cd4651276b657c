package pakasir

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type Option func(*ServiceImpl)

// WithHTTPClient sends requests through client. A zero Timeout is replaced
// with the default 30 seconds; the caller's client is not modified.
func WithHTTPClient(client *http.Client) Option {
	return func(s *ServiceImpl) {
		if client == nil {
			return
		}
		c := *client
		if c.Timeout == 0 {
			c.Timeout = requestTimeout
		}
		s.httpClient = &c
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *ServiceImpl) {
		if log != nil {
			s.log = log
		}
	}
}

// WithBaseURL points the client at another Pakasir host, e.g. a sandbox or a
// test server.
func WithBaseURL(u string) Option {
	return func(s *ServiceImpl) {
		u = strings.TrimRight(strings.TrimSpace(u), "/")
		if u != "" {
			s.baseURL = u
		}
	}
}
