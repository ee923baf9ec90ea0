package main

import (
	"encoding/json"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/okessler/sugg/internal/log"
	"github.com/okessler/sugg/internal/output"
)

func newQueryCmd() *cobra.Command {
	var (
		limit      int
		offline    bool
		jsonOutput bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:     "query <term>",
		Short:   "Print suggestions for a term",
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Print suggestions for a term, one per line, best match first.

This is the non-interactive counterpart to pick, for scripts and
pipelines. Results go through the same cache as the picker.`,
		Example: `  sugg query cat
  sugg query -n 5 --json cat | jq -r '.[].word'
  sugg query --offline cat     # No network, local word list only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			source, err := newSource(ctx, offline)
			if err != nil {
				return err
			}
			runner, err := newRunner(source, cfg.Cache.Enabled && !noCache)
			if err != nil {
				return err
			}
			defer runner.Flush()

			if limit <= 0 {
				limit = cfg.Limit
			}

			words, err := runner.Lookup(ctx, args[0], limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(words)
			}

			if len(words) == 0 {
				log.FromContext(ctx).Printf("No suggestions for %q\n", args[0])
				return nil
			}
			for _, w := range words {
				if w.Score > 0 {
					out.Printf("%s\t%s\n", w.Word, humanize.Comma(int64(w.Score)))
				} else {
					out.Println(w.Word)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum suggestions (default from config)")
	cmd.Flags().BoolVar(&offline, "offline", false, "Use the local word list instead of the Datamuse API")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON with scores")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the on-disk suggestion cache")

	return cmd
}
