package retrieval

import (
	"strings"

	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/domain/commonModels"
)

// Assemble renders results as "Source: <name>" blocks holding the full parent document.
// No results gives "", which callers treat as no context.
func Assemble(results []commonModels.QueryResult) string {
	if len(results) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		body := r.FullDocument
		if body == "" {
			body = r.Text
		}
		blocks = append(blocks, "Source: "+r.Source+"\n\n"+body)
	}
	return strings.Join(blocks, config.ContextSeparator)
}
