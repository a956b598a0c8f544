package customHttpClient

import (
	"net/http"
	"testing"
	"time"

	"github.com/akolanti/llm-assistant/internal/config"
)

func TestNewClient(t *testing.T) {
	c := NewClient(5 * time.Second)
	if c.Timeout != 5*time.Second {
		t.Errorf("timeout = %s", c.Timeout)
	}
	tr, ok := c.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("unexpected transport %T", c.Transport)
	}
	if tr.MaxIdleConnsPerHost != config.MaxIdleConnsPerHost {
		t.Errorf("MaxIdleConnsPerHost = %d", tr.MaxIdleConnsPerHost)
	}
	if NewClient(0).Transport == c.Transport {
		t.Error("clients should not share a transport")
	}
}
