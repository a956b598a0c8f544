package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/akolanti/llm-assistant/internal/adapter/utils"
	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/handlers"
	"github.com/akolanti/llm-assistant/internal/middleware"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
	"github.com/go-chi/chi/v5"
)

type Server struct {
	http   *http.Server
	logger *logger_i.Logger
}

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	// WorkerStop and Group are nil for services without a worker pool.
	WorkerStop    chan bool
	Group         *sync.WaitGroup
	CloseServices context.CancelFunc
}

// DocstoreRoutes mounts the docstore API. mcpHandler may be nil.
func DocstoreRoutes(mw *middleware.Middleware, h *handlers.DocHandler, mcpHandler http.Handler) *chi.Mux {
	r := utils.NewRouter(true)
	r.Get("/health", mw.WrapPublic(h.Health))
	r.Post("/documents/", mw.Wrap(h.UploadDocument))
	r.Get("/documents", mw.Wrap(h.ListDocuments))
	r.Post("/query", mw.Wrap(h.Query))
	r.Post("/context", mw.Wrap(h.Context))
	r.Get("/stats", mw.Wrap(h.Stats))
	r.Post("/ingest", mw.Wrap(h.PostIngestHandler))
	r.Get("/status/{id}", mw.Wrap(h.GetStatusHandler))
	if mcpHandler != nil {
		r.Handle("/mcp", mw.Wrap(mcpHandler.ServeHTTP))
	}
	return r
}

func AssistantRoutes(mw *middleware.Middleware, h *handlers.ChatHandler) *chi.Mux {
	r := utils.NewRouter(false)
	r.Get("/", mw.WrapPublic(h.Root))
	r.Get("/health", mw.WrapPublic(h.Health))
	r.Post("/chat/stream", mw.Wrap(h.StreamChat))
	r.Post("/prompt", mw.Wrap(h.Prompt))
	return r
}

// New sizes the write timeout for the slowest response the service produces.
func New(name, listenAddr string, handler http.Handler, writeTimeout time.Duration) *Server {
	return &Server{
		http: &http.Server{
			Addr:         listenAddr,
			Handler:      handler,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
		logger: logger_i.NewLogger(name),
	}
}

func (s *Server) CreateServer() {
	s.logger.Info("Server is listening at", "address", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Server crashed", "error", err.Error(), "addr", s.http.Addr)
	}
}

func (s *Server) ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	s.logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		s.http.SetKeepAlivesEnabled(false)

		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error("Could not shutdown gracefully", "error", err)
		}

		//close workers
		if shutdownParams.WorkerStop != nil {
			close(shutdownParams.WorkerStop)
			shutdownParams.Group.Wait()
		}
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Gracefully shut down")
	case <-ctx.Done():
		s.logger.Info("Force Shut down")
		os.Exit(1)
	}
}
