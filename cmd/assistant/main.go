package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/llm-assistant/internal/bootstrap"
	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/customHttpClient"
	"github.com/akolanti/llm-assistant/internal/docstoreClient"
	"github.com/akolanti/llm-assistant/internal/handlers"
	"github.com/akolanti/llm-assistant/internal/middleware"
	"github.com/akolanti/llm-assistant/internal/rag"
	"github.com/akolanti/llm-assistant/internal/server"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
)

var (
	envFile     string
	listenAddr  string
	docstoreURL string
)

func main() {
	flag.StringVar(&envFile, "env-file", ".env", "optional dotenv file")
	flag.StringVar(&listenAddr, "listen-addr", "", "server listen address (overrides API_LISTEN_ADDR)")
	flag.StringVar(&docstoreURL, "docstore-url", "", "docstore base url (overrides DOCSTORE_URL)")
	flag.Parse()

	settings, err := config.Load(envFile)
	if err != nil {
		logger_i.NewLogger("main").Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if listenAddr != "" {
		settings.AssistantListenAddr = listenAddr
	}
	if docstoreURL != "" {
		settings.DocstoreURL = docstoreURL
	}

	logger_i.Init(settings)
	logger := logger_i.NewLogger("main")

	serviceContext, closeExternalServices := context.WithCancel(context.Background())

	docstore := docstoreClient.NewClient(settings.DocstoreURL, settings.AuthToken,
		customHttpClient.NewClient(config.DocstoreRequestTimeout))
	if err := docstore.Health(serviceContext); err != nil {
		//chat still works, only without document context
		logger.Warn("Docstore not reachable at startup", "url", settings.DocstoreURL, "error", err)
	}

	var chat rag.ChatService
	provider, err := bootstrap.NewProvider(serviceContext, settings)
	if err != nil {
		logger.Error("LLM provider failed to initialize", "error", err)
	} else {
		chat = rag.NewChatService(provider, docstore)
		logger.Info("LLM provider ready", "model", provider.Model())
	}

	routes := server.AssistantRoutes(middleware.New(settings), handlers.NewChatHandler(chat))
	srv := server.New("assistant", settings.AssistantListenAddr, routes, config.StreamWriteTimeout)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	go srv.ShutDownHandler(server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	})
	go srv.CreateServer()

	<-stopExecution
	logger.Info("Server stopped")
}
