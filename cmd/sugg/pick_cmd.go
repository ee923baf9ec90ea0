package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/okessler/sugg/internal/history"
	"github.com/okessler/sugg/internal/log"
	"github.com/okessler/sugg/internal/output"
	"github.com/okessler/sugg/internal/ui"
)

func newPickCmd() *cobra.Command {
	var (
		limit       int
		placeholder string
		defaultWord string
		offline     bool
		copyToClip  bool
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:     "pick",
		Short:   "Interactively pick a word suggestion",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Open the interactive word picker.

Suggestions update as you type, debounced so fast typing makes a
single request. The picked word is printed to stdout; everything else
renders to stderr, so the command composes with the shell.

Cancelling (esc or ctrl+c) prints nothing and exits successfully.`,
		Example: `  WORD=$(sugg pick)            # Use the picked word in the shell
  sugg pick --copy             # Also copy the pick to the clipboard
  sugg pick --offline          # Suggest from the local word list
  sugg pick --default cat      # Preselect "cat" when it appears`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if !isatty.IsTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("pick needs a terminal; use 'sugg query' in scripts")
			}

			source, err := newSource(ctx, offline)
			if err != nil {
				return err
			}
			runner, err := newRunner(source, cfg.Cache.Enabled)
			if err != nil {
				return err
			}
			defer runner.Flush()

			if limit <= 0 {
				limit = cfg.Limit
			}
			if placeholder == "" {
				placeholder = cfg.UI.Placeholder
			}

			picker := ui.NewPicker(ctx, runner, ui.Options{
				Title:       "Pick a word",
				Placeholder: placeholder,
				Default:     defaultWord,
				Limit:       limit,
				Debounce:    cfg.Debounce(),
				Fuzzy:       cfg.UI.Filter == "fuzzy",
			})
			if err := picker.Run(); err != nil {
				return fmt.Errorf("run picker: %w", err)
			}

			word, ok := picker.Picked()
			if !ok {
				l.Debug("pick cancelled")
				return nil
			}

			if cfg.History.Enabled {
				h, err := history.Load()
				if err == nil {
					h.Record(history.Pick{Word: word.Word, Term: picker.LastTerm()}, cfg.History.Size)
					err = h.Save()
				}
				if err != nil {
					l.Printf("Warning: save history: %v\n", err)
				}
			}

			if copyToClip {
				if err := clipboard.WriteAll(word.Word); err != nil {
					l.Printf("Warning: copy to clipboard: %v\n", err)
				}
			}

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(word)
			}
			out.Println(word.Word)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum suggestions per query (default from config)")
	cmd.Flags().StringVar(&placeholder, "placeholder", "", "Input placeholder text")
	cmd.Flags().StringVar(&defaultWord, "default", "", "Preselect this word when it appears in the suggestions")
	cmd.Flags().BoolVar(&offline, "offline", false, "Use the local word list instead of the Datamuse API")
	cmd.Flags().BoolVarP(&copyToClip, "copy", "c", false, "Copy the picked word to the clipboard")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the pick as JSON (word and score)")

	return cmd
}
