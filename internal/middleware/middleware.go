package middleware

import (
	"net/http"
	"strconv"

	"github.com/akolanti/llm-assistant/internal/adapter/utils"
	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/metrics"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
	"golang.org/x/time/rate"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

// Middleware carries the request pipeline state shared by every route of one service.
type Middleware struct {
	authToken string
	limiter   *IPRateLimiter
	logger    *logger_i.Logger
}

// New builds the pipeline. An empty AUTH_TOKEN disables bearer auth, RATE_LIMITING=false
// disables the per-IP limiter.
func New(settings *config.Settings) *Middleware {
	m := &Middleware{
		authToken: settings.AuthToken,
		logger:    logger_i.NewLogger("middleware"),
	}
	if settings.RateLimiting {
		m.limiter = NewIPRateLimiter(rate.Limit(config.RATE_LIMIT_PER_SECOND), config.BURST_RATE_LIMIT_PER_SECOND)
	}
	if m.authToken == "" {
		m.logger.Warn("AUTH_TOKEN is empty, requests are not authenticated")
	}
	return m
}

// Wrap runs trace, auth and rate limiting before next.
func (m *Middleware) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return m.wrap(next, true)
}

// WrapPublic skips authentication, for health probes.
func (m *Middleware) WrapPublic(next http.HandlerFunc) http.HandlerFunc {
	return m.wrap(next, false)
}

func (m *Middleware) wrap(next http.HandlerFunc, withAuth bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK} //metrics
		re := m.processRequest(requestResponseStruct{req: r, writer: rec, logger: m.logger}, withAuth)

		if !handleBadRequest(re) {
			metrics.HttpRequestsTotal.WithLabelValues(utils.RoutePattern(r), strconv.Itoa(rec.Status)).Inc()
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(utils.RoutePattern(r), strconv.Itoa(rec.Status)).Inc() //metrics
	}
}

func (m *Middleware) processRequest(re requestResponseStruct, withAuth bool) requestResponseStruct {
	re = injectTrace(re)
	re.logger.Debug("New request received", "method", re.req.Method, "path", re.req.URL.Path)
	if withAuth {
		re = m.authenticate(re)
		if re.badRequest.isBadRequest {
			return re //stop if auth fails
		}
	}
	if m.limiter != nil {
		re = m.rateLimiter(re)
	}
	return re
}
