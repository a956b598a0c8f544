package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/akolanti/llm-assistant/pkg/logger_i"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
)

var (
	loadDir  string
	loadGlob string
)

func init() {
	loadCmd.Flags().StringVar(&loadDir, "dir", "documents", "directory to load")
	loadCmd.Flags().StringVar(&loadGlob, "glob", "**/*.txt", "file pattern relative to --dir, ** matches any number of directories")
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Index every matching file below a directory",
	Long: `Index every matching file below a directory. Files are named by their path relative
to --dir, so loading the same directory twice keeps the existing documents.

Examples:
  docloader load --dir ./documents
  docloader load --dir ./manuals --glob "**/*.pdf" --backend chromem`,
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, _ []string) error {
	files, err := matchFiles(loadDir, loadGlob)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No documents found in %s matching %s\n", loadDir, loadGlob)
		return nil
	}

	docs, closeFn, err := openDocuments(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()
	logger := logger_i.NewLogger("docloader")

	var loaded, failed int
	for _, rel := range files {
		id, err := docs.AddDocumentFile(cmd.Context(), rel, filepath.Join(loadDir, filepath.FromSlash(rel)))
		if err != nil {
			failed++
			logger.Error("Skipping document", "source", rel, "error", err)
			continue
		}
		loaded++
		logger.Info("Indexed document", "source", rel, "id", id)
	}

	stats, err := docs.Stats(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d of %d documents (%d failed). Collection %s now holds %d documents in %d chunks\n",
		loaded, len(files), failed, stats.Collection, stats.DocumentCount, stats.ChunkCount)
	if failed > 0 {
		return fmt.Errorf("%d documents failed to load", failed)
	}
	return nil
}

// matchFiles returns the slash separated paths below dir that match pattern, sorted.
func matchFiles(dir, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob %q", pattern)
	}
	files, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s in %s: %w", pattern, dir, err)
	}
	sort.Strings(files)
	return files, nil
}
