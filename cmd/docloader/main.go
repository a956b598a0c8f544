// Package main implements docloader, a bulk loader that indexes a directory of text files
// into the configured vector backend without going through the docstore HTTP API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/akolanti/llm-assistant/internal/bootstrap"
	"github.com/akolanti/llm-assistant/internal/config"
	"github.com/akolanti/llm-assistant/internal/rag"
	"github.com/akolanti/llm-assistant/pkg/logger_i"
	"github.com/spf13/cobra"
)

var (
	envFile string
	backend string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "docloader",
	Short: "Bulk load and query the document index",
	Long: `docloader indexes every matching file below a directory into the vector backend
configured for the docstore, and runs test queries against it.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "vector backend: qdrant, chroma, chromem or memory (overrides VECTOR_BACKEND)")
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(queryCmd)
}

// openDocuments loads settings and builds the same document service the docstore uses.
func openDocuments(ctx context.Context) (rag.DocumentService, func(), error) {
	settings, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}
	if backend != "" {
		settings.VectorBackend = backend
	}
	logger_i.Init(settings)

	docs, closeFn, err := bootstrap.NewDocumentService(ctx, settings)
	if err != nil {
		return nil, nil, fmt.Errorf("open document index: %w", err)
	}
	return docs, closeFn, nil
}
