package handlers

import (
	"context"
	"iter"

	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/akolanti/llm-assistant/internal/domain/jobModel"
	"github.com/akolanti/llm-assistant/internal/rag"
)

type mockDocs struct {
	OnAddDocument     func(ctx context.Context, source string, raw []byte) (string, error)
	OnAddDocumentFile func(ctx context.Context, source, path string) (string, error)
	OnQuery           func(ctx context.Context, query string, k int, minSim *float64, minRel *commonModels.RelevanceLevel) ([]commonModels.QueryResult, error)
	OnGetContext      func(ctx context.Context, prompt string, k int, minSim float64) (string, error)
	Docs              []commonModels.Document
}

func (m *mockDocs) AddDocument(ctx context.Context, source string, raw []byte) (string, error) {
	if m.OnAddDocument != nil {
		return m.OnAddDocument(ctx, source, raw)
	}
	return "doc-1", nil
}

func (m *mockDocs) AddDocumentFile(ctx context.Context, source, path string) (string, error) {
	if m.OnAddDocumentFile != nil {
		return m.OnAddDocumentFile(ctx, source, path)
	}
	return "doc-file", nil
}

func (m *mockDocs) IngestJob(ctx context.Context, job jobModel.Job) jobModel.Job {
	job.Status = jobModel.JobStatusComplete
	return job
}

func (m *mockDocs) Query(ctx context.Context, query string, k int, minSim *float64, minRel *commonModels.RelevanceLevel) ([]commonModels.QueryResult, error) {
	if m.OnQuery != nil {
		return m.OnQuery(ctx, query, k, minSim, minRel)
	}
	return nil, nil
}

func (m *mockDocs) GetContext(ctx context.Context, prompt string, k int, minSim float64) (string, error) {
	if m.OnGetContext != nil {
		return m.OnGetContext(ctx, prompt, k, minSim)
	}
	return "", nil
}

func (m *mockDocs) ListDocuments(ctx context.Context) ([]commonModels.Document, error) {
	return m.Docs, nil
}

func (m *mockDocs) Stats(ctx context.Context) (rag.Stats, error) {
	return rag.Stats{Collection: "test", Backend: "memory", DocumentCount: len(m.Docs)}, nil
}

type mockChat struct {
	OnStream func(ctx context.Context, messages []commonModels.ConversationMessage, temperature float32, maxTokens int) iter.Seq2[string, error]
	OnAnswer func(ctx context.Context, prompt string) (string, error)
}

func (m *mockChat) StreamChat(ctx context.Context, messages []commonModels.ConversationMessage, temperature float32, maxTokens int) iter.Seq2[string, error] {
	return m.OnStream(ctx, messages, temperature, maxTokens)
}

func (m *mockChat) Answer(ctx context.Context, prompt string) (string, error) {
	return m.OnAnswer(ctx, prompt)
}

func (m *mockChat) Model() string { return "mock" }
