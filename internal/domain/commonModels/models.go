package commonModels

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type Document struct {
	Id                  string    `json:"doc_id"`
	Source              string    `json:"source"`
	ChunkCount          int       `json:"chunk_count"`
	LastIngestTimestamp time.Time `json:"ingested_at"`
	ContentType         DocType   `json:"content_type"`
	// Preview is filled from the index on listing and never stored.
	Preview string `json:"preview,omitempty"`
}

// DocChunk is the unit stored in the vector index. FullDocument repeats the parent text on
// every chunk so any hit can recover the complete document.
type DocChunk struct {
	ChunkId      string `json:"chunk_id"`
	DocId        string `json:"doc_id"`
	Source       string `json:"source"`
	Chunk        string `json:"content"`
	FullDocument string `json:"full_document"`
	ChunkIndex   int    `json:"chunk_index"`
}

type ScoredChunk struct {
	Chunk      DocChunk
	Similarity float64
}

type QueryResult struct {
	Text         string         `json:"text"`
	Source       string         `json:"source"`
	DocId        string         `json:"doc_id"`
	ChunkIndex   int            `json:"chunk_index"`
	FullDocument string         `json:"full_document"`
	Similarity   float64        `json:"similarity"`
	Relevance    RelevanceLevel `json:"relevance"`
	IsRelevant   bool           `json:"is_relevant"`
}

type ConversationMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type DocType string

var PDF DocType = "PDF"
var DOCX DocType = "DOCX"
var TXT DocType = "TXT"

// RelevanceLevel is ordered: NotRelevant < Low < Medium < High.
type RelevanceLevel int

const (
	NotRelevant RelevanceLevel = iota
	Low
	Medium
	High
)

var relevanceNames = [...]string{"not_relevant", "low", "medium", "high"}

func (r RelevanceLevel) String() string {
	if r < NotRelevant || r > High {
		return fmt.Sprintf("RelevanceLevel(%d)", int(r))
	}
	return relevanceNames[r]
}

func ParseRelevanceLevel(s string) (RelevanceLevel, error) {
	for i, name := range relevanceNames {
		if strings.EqualFold(s, name) {
			return RelevanceLevel(i), nil
		}
	}
	return NotRelevant, fmt.Errorf("unknown relevance level %q", s)
}

func (r RelevanceLevel) MarshalText() ([]byte, error) {
	if r < NotRelevant || r > High {
		return nil, fmt.Errorf("invalid relevance level %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *RelevanceLevel) UnmarshalText(text []byte) error {
	level, err := ParseRelevanceLevel(string(text))
	if err != nil {
		return err
	}
	*r = level
	return nil
}

// DocumentRegistry records which sources have been ingested, keyed by source name.
type DocumentRegistry interface {
	// Reserve claims doc.Source. When the source is already taken it returns the stored
	// record and false.
	Reserve(ctx context.Context, doc Document) (Document, bool, error)
	Save(ctx context.Context, doc Document) error
	Release(ctx context.Context, source string) error
	Get(ctx context.Context, source string) (Document, bool, error)
	List(ctx context.Context) ([]Document, error)
}
