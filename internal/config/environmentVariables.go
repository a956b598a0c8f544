package config

import (
	"log/slog"
	"time"
)

type traceKey string

const (
	LOG_LEVEL_PROD                       = slog.LevelInfo
	TRACE_ID_KEY                traceKey = "traceId"
	TRACE_ID_HEADER                      = "X-Trace-Id"
	RATE_LIMIT_PER_SECOND                = 5
	BURST_RATE_LIMIT_PER_SECOND          = 10
	RATE_LIMITER_IDLE_TTL                = 10 * time.Minute

	//retrieval
	OverFetchFactor          = 2
	DefaultNumResults        = 3
	MaxNumResults            = 50
	DefaultContextResults    = 3
	DefaultMinSimilarity     = 0.1
	AssistantContextResults  = 2 //the chat service asks the docstore for fewer, whole documents
	HighRelevanceThreshold   = 0.5
	MediumRelevanceThreshold = 0.2
	LowRelevanceThreshold    = 0.1
	ContextSeparator         = "\n\n---\n\n"

	//chunking
	DefaultChunkSize = 500
	IngestBatchSize  = 100
	MaxUploadSize    = 32 << 20 //32mb

	//document store
	EmbeddingDBName         = "llm-assistant-docs"
	DocumentRegistryKey     = "documents:by-source"
	ChunkIdNamespace        = "6f1c4a2e-53a4-4a9e-9f0b-1c2d3e4f5a6b"
	DocumentPreviewLength   = 200
	QdrantConnectionTimeout = 30 * time.Second
	ChromaConnectionTimeout = 30 * time.Second
	QdrantGrpcPort          = 6334
	QdrantPoolSize          = 1                //2-5 is preferred for prod according to documentation
	QdrantKeepAliveTimeout  = 30 * time.Second //5 * time.Minute for prod maybe- fine tune for performance
	ChromemPath             = "data/chromadb"

	//worker pool for async ingestion jobs
	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	BufferLimit                     = 100
	QueueWaitTimeout                = 5 * time.Second

	//per request deadlines
	RetrievalTimeout  = 30 * time.Second
	GenerationTimeout = 120 * time.Second
	IngestJobTimeout  = 60 * time.Second
	ReservationTTL    = 2 * IngestJobTimeout //an older ingest reservation belongs to a dead writer

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	StreamWriteTimeout     = GenerationTimeout + 10*time.Second
	DocstoreWriteTimeout   = IngestJobTimeout + 10*time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//docstore http client
	DocstoreRequestTimeout = 15 * time.Second
	DialTimeout            = 5 * time.Second
	MaxIdleConns           = 50
	MaxIdleConnsPerHost    = 25
	IdleConnTimeout        = 60 * time.Second

	//llm sampling
	ChatTopP             float32 = 0.76
	ChatTopK                     = 10
	ChatRepeatPenalty    float32 = 1.2
	ChatPresencePenalty  float32 = 0.1
	ChatFrequencyPenalty float32 = 0.1
	DefaultTemperature   float32 = 0.7
	DefaultMaxTokens             = 2000
	AnswerTemperature    float32 = 0.1
	AnswerTopP           float32 = 0.1
	AnswerMaxTokens              = 150

	SystemPrompt = `You are a helpful AI assistant that provides accurate information based strictly on the given context.
Your responses should:
1. Only use information explicitly stated in the provided context
2. Say "I don't have enough information" when no context is provided unless the the user has a factual question
3. Never make assumptions or infer details on questions or topics that are not factual
4. Quote relevant parts of the context when appropriate
5. Be concise and direct`

	//redis
	RedisJobStore      = 0
	RedisDocumentStore = 1
	RedisJobStoreTTL   = 24 * time.Hour
)
