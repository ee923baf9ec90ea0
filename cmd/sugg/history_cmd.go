package main

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/okessler/sugg/internal/history"
	"github.com/okessler/sugg/internal/log"
	"github.com/okessler/sugg/internal/output"
	"github.com/okessler/sugg/internal/ui/prompt"
)

func newHistoryCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "history",
		Short:   "Show recently picked words",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Show recently picked words, newest first.

Each line shows the word, the search term it was picked from, and how
long ago it was picked.`,
		Example: `  sugg history
  sugg history --json | jq -r '.[].word'
  sugg history clear`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			h, err := history.Load()
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(h.Picks)
			}

			if len(h.Picks) == 0 {
				log.FromContext(ctx).Println("No picks yet")
				return nil
			}
			for _, p := range h.Picks {
				from := ""
				if p.Term != "" && p.Term != p.Word {
					from = fmt.Sprintf(" (from %q)", p.Term)
				}
				out.Printf("%-20s %s%s\n", p.Word, humanize.Time(p.PickedAt), from)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	cmd.AddCommand(newHistoryClearCmd())

	return cmd
}

func newHistoryClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the pick history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := log.FromContext(cmd.Context())

			h, err := history.Load()
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			if len(h.Picks) == 0 {
				l.Println("History is already empty")
				return nil
			}

			if !force {
				res, err := prompt.Confirm(fmt.Sprintf("Clear %d history entries?", len(h.Picks)))
				if err != nil {
					return err
				}
				if !res.Confirmed || res.Cancelled {
					return nil
				}
			}

			if err := history.Clear(); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			l.Println("History cleared")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Clear without confirmation")

	return cmd
}
