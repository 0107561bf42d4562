package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/unisearch/internal/domain/search/mode"
	"github.com/kailas-cloud/unisearch/internal/domain/search/request"
	chiTransport "github.com/kailas-cloud/unisearch/internal/transport/chi"
	searchuc "github.com/kailas-cloud/unisearch/internal/usecase/search"
)

type diagnoseOptions struct {
	sort       string
	limit      int
	jsonOutput bool
}

func newDiagnoseCmd(flags *globalFlags) *cobra.Command {
	opts := diagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <query>",
		Short: "Run a search and print the per-result score breakdown",
		Example: `  unisearch diagnose "야생 서버"
  unisearch diagnose "shader" --sort latest --limit 5
  unisearch diagnose "크래시 해결" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd.Context(), cmd.OutOrStdout(), flags, strings.Join(args, " "), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.sort, "sort", "s", "", "Sort mode: relevance, popularity, latest")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", request.DefaultLimit, "Maximum results")
	cmd.Flags().BoolVarP(&opts.jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

func runDiagnose(ctx context.Context, out io.Writer, flags *globalFlags, query string, opts diagnoseOptions) error {
	sortMode, ok := mode.Parse(opts.sort)
	if !ok {
		return fmt.Errorf("unknown sort mode %q", opts.sort)
	}
	req, err := request.New(query, sortMode, opts.limit)
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}

	cfg, logger, err := flags.load()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(ctx, cfg, logger, appOptions{})
	if err != nil {
		return err
	}
	defer a.close(ctx)

	d, err := a.search.Diagnose(ctx, &req)
	if err != nil {
		return fmt.Errorf("diagnose: %w", err)
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(chiTransport.NewDiagnosticsResponse(d)) //nolint:wrapcheck // terminal output
	}
	return printDiagnosis(out, d)
}

// printDiagnosis renders the breakdown table.
func printDiagnosis(out io.Writer, d searchuc.Diagnosis) error {
	fmt.Fprintf(out, "Intent:   %s", d.Intent.Category)
	if d.Intent.SubCategory != "" {
		fmt.Fprintf(out, " / %s", d.Intent.SubCategory)
	}
	fmt.Fprintln(out)
	if d.Intent.Explanation != "" {
		fmt.Fprintf(out, "Why:      %s\n", d.Intent.Explanation)
	}
	fmt.Fprintf(out, "Terms:    %s\n", strings.Join(d.SearchTerms, ", "))
	fmt.Fprintf(out, "Sort:     %s\n", d.Sort)
	fmt.Fprintf(out, "Ranking:  %s\n", d.RankingVersion)
	fmt.Fprintf(out, "Elapsed:  %s\n\n", d.Elapsed)

	if len(d.Results) == 0 {
		fmt.Fprintln(out, "No results.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tTYPE\tTITLE\tSCORE\tBASE\tKEYWORD\tDESC/TAG\tINTENT\tFUZZY\tSIM\t")
	for i := range d.Results {
		r := &d.Results[i]
		b := r.Breakdown()
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%.2f\t\n",
			i+1, r.Entry().Kind(), clip(r.Entry().Title(), 32),
			r.Score(), b.Base, b.KeywordMatch, b.DescOrTagMatch, b.IntentBonus, b.FuzzyBonus, r.FuzzyScore())
	}
	return tw.Flush() //nolint:wrapcheck // terminal output
}

func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
