package rag

import "errors"

var (
	// ErrNotInitialized means a model or index could not be reached at startup.
	ErrNotInitialized = errors.New("service not initialized")
	// ErrDecode rejects a document whose content is not text.
	ErrDecode     = errors.New("document is not decodable as text")
	ErrRetrieval  = errors.New("retrieval failed")
	ErrGeneration = errors.New("generation failed")
)
