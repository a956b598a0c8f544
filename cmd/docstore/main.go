// @title           LLM Assistant Docstore API
// @version         1.0
// @description     Document ingestion and semantic retrieval for the LLM assistant
// @termsOfService  http://swagger.io/terms/

// @contact.name    akolanti
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8001
// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/akolanti/llm-assistant/cmd/docstore/docs"
	"github.com/akolanti/llm-assistant/internal/bootstrap"
	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/domain/jobModel"
	"github.com/akolanti/llm-assistant/internal/handlers"
	"github.com/akolanti/llm-assistant/internal/job"
	"github.com/akolanti/llm-assistant/internal/mcpServer"
	"github.com/akolanti/llm-assistant/internal/middleware"
	"github.com/akolanti/llm-assistant/internal/server"
	"github.com/akolanti/llm-assistant/internal/worker"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
)

var (
	envFile           string
	listenAddr        string
	backend           string
	uploadDir         string
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {
	flag.StringVar(&envFile, "env-file", ".env", "optional dotenv file")
	flag.StringVar(&listenAddr, "listen-addr", "", "server listen address (overrides DOCSTORE_LISTEN_ADDR)")
	flag.StringVar(&backend, "backend", "", "vector backend: qdrant, chroma, chromem or memory (overrides VECTOR_BACKEND)")
	flag.StringVar(&uploadDir, "upload-dir", "", "directory for staged uploads, defaults to the system temp dir")
	flag.Parse()

	settings, err := config.Load(envFile)
	if err != nil {
		logger_i.NewLogger("main").Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if listenAddr != "" {
		settings.DocstoreListenAddr = listenAddr
	}
	if backend != "" {
		settings.VectorBackend = backend
	}

	logger_i.Init(settings)
	logger := logger_i.NewLogger("main")

	serviceContext, closeExternalServices := context.WithCancel(context.Background())

	//a failed backend leaves the service nil and the routes answer 503
	docs, closeDocs, err := bootstrap.NewDocumentService(serviceContext, settings)
	if err != nil {
		logger.Error("Document service failed to initialize", "error", err)
	}

	var jobService *job.Service
	var mcpHandler http.Handler
	stopWorkerChannel = make(chan bool, 1)
	closeJobStore := func() {}

	if docs != nil {
		var jobStore jobModel.JobStore
		jobStore, closeJobStore = bootstrap.NewJobStore(serviceContext, settings)

		logger.Info("Starting job service")
		jobService = job.InitJobService(job.ServiceConfig{
			JobChannel:        make(chan jobModel.Job, config.BufferLimit),
			DispatcherChannel: make(chan bool, 1),
			JobStore:          jobStore,
		})
		worker.NewPool(jobService, docs, stopWorkerChannel, &workerWaitGroup).Start()
		mcpHandler = mcpServer.NewServer(docs).Handler()
	}

	routes := server.DocstoreRoutes(
		middleware.New(settings),
		handlers.NewDocHandler(docs, jobService, uploadDir),
		mcpHandler,
	)
	srv := server.New("docstore", settings.DocstoreListenAddr, routes, config.DocstoreWriteTimeout)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices: func() {
			closeExternalServices()
			closeJobStore()
			closeDocs()
		},
	}
	go srv.ShutDownHandler(shutdownParams)
	go srv.CreateServer()

	<-stopExecution
	logger.Info("Server stopped")
}
