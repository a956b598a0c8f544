package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/akolanti/llm-assistant/internal/adapter"
	"github.com/spf13/cobra"
)

var (
	queryResults    int
	queryMinSim     float64
	queryOutputJSON bool
)

func init() {
	queryCmd.Flags().IntVarP(&queryResults, "num-results", "k", 3, "number of results")
	queryCmd.Flags().Float64Var(&queryMinSim, "min-similarity", 0, "drop results below this similarity")
	queryCmd.Flags().BoolVar(&queryOutputJSON, "json", false, "print the docstore JSON response")
}

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Run a similarity search against the index",
	Long: `Run a similarity search against the index and print one passage per source.

Examples:
  docloader query "What are cats?"
  docloader query -k 5 --json "photosynthesis"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	docs, closeFn, err := openDocuments(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	var minSim *float64
	if cmd.Flags().Changed("min-similarity") {
		minSim = &queryMinSim
	}
	results, err := docs.Query(cmd.Context(), strings.Join(args, " "), queryResults, minSim, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if queryOutputJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(adapter.ToQueryResponse(results))
	}
	if len(results) == 0 {
		fmt.Fprintln(out, "No results")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tSIMILARITY\tRELEVANCE\tTEXT")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%.3f\t%s\t%s\n", r.Source, r.Similarity, r.Relevance, snippet(r.Text, 60))
	}
	return w.Flush()
}

func snippet(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
