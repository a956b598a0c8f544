package adapter

import (
	"github.com/akolanti/llm-assistant/internal/api"
	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
	"github.com/akolanti/llm-assistant/internal/rag"
)

func ToQueryResponse(results []commonModels.QueryResult) api.QueryResponse {
	out := make([]api.QueryResult, 0, len(results))
	for _, r := range results {
		out = append(out, api.QueryResult{
			Text: r.Text,
			Metadata: api.DocumentMetadata{
				Source:       r.Source,
				FullDocument: r.FullDocument,
				Similarity:   r.Similarity,
				Relevance:    r.Relevance,
				DocId:        r.DocId,
				ChunkIndex:   r.ChunkIndex,
			},
			IsRelevant: r.IsRelevant,
		})
	}
	return api.QueryResponse{Results: out, HasResults: len(out) > 0}
}

// FromQueryResponse is the inverse of ToQueryResponse, used by clients of the docstore.
func FromQueryResponse(res api.QueryResponse) []commonModels.QueryResult {
	out := make([]commonModels.QueryResult, 0, len(res.Results))
	for _, r := range res.Results {
		out = append(out, commonModels.QueryResult{
			Text:         r.Text,
			Source:       r.Metadata.Source,
			DocId:        r.Metadata.DocId,
			ChunkIndex:   r.Metadata.ChunkIndex,
			FullDocument: r.Metadata.FullDocument,
			Similarity:   r.Metadata.Similarity,
			Relevance:    r.Metadata.Relevance,
			IsRelevant:   r.IsRelevant,
		})
	}
	return out
}

func ToContextResponse(context string) api.ContextResponse {
	return api.ContextResponse{Context: context, HasContext: context != ""}
}

func ToDocumentList(docs []commonModels.Document) api.DocumentListResponse {
	out := make([]api.DocumentSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, api.DocumentSummary{
			Id:          d.Id,
			Source:      d.Source,
			ChunkCount:  d.ChunkCount,
			ContentType: string(d.ContentType),
			IngestedAt:  d.LastIngestTimestamp,
			Text:        d.Preview,
		})
	}
	return api.DocumentListResponse{TotalDocuments: len(out), Documents: out}
}

func ToStatsResponse(stats rag.Stats) api.StatsResponse {
	return api.StatsResponse{
		Status:        "ok",
		Collection:    stats.Collection,
		Backend:       stats.Backend,
		DocumentCount: stats.DocumentCount,
		ChunkCount:    stats.ChunkCount,
	}
}
