package customHttpClient

import (
	"net"
	"net/http"
	"time"

	"github.com/akolanti/llm-assistant/internal/config"
)

// NewClient returns an http.Client over a pooled transport shared by the docstore client and
// the OpenAI compatible model servers. A zero timeout leaves deadlines to the request context,
// which streaming completions need.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: newTransport(),
		Timeout:   timeout,
	}
}

func newTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   config.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}
}
