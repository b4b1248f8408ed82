package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"tscolor/internal/edit"
	"tscolor/internal/engine"
	"tscolor/internal/visible"
)

func newReplayCommand(a *app) *cobra.Command {
	var langName string
	var write bool

	cmd := &cobra.Command{
		Use:   "replay FILE PATCH",
		Short: "Apply a unified diff to FILE as live edits and check the result against a fresh parse",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReplay(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], langName, write)
		},
	}
	cmd.Flags().StringVar(&langName, "lang", "", langUsage("language override"))
	cmd.Flags().BoolVar(&write, "write", false, "write the patched text back to FILE")
	return cmd
}

func (a *app) runReplay(ctx context.Context, out io.Writer, file string, patchFile string, langName string, write bool) error {
	text, l, err := loadDocument(file, langName)
	if err != nil {
		return err
	}
	patch, err := os.ReadFile(patchFile)
	if err != nil {
		return errors.Errorf("reading patch: %w", err)
	}
	changes, err := edit.FromUnifiedDiff(text, patch)
	if err != nil {
		return err
	}

	live := newCollector()
	eng := engine.New(live, a.engineOptions()...)
	defer eng.Release()

	if err := eng.DocumentOpened(ctx, file, l, text); err != nil {
		return err
	}
	if err := eng.DocumentChanged(ctx, file, changes); err != nil {
		return err
	}
	patched, _ := eng.Text(file)
	lines := strings.Split(patched, "\n")
	eng.VisibleRangesChanged(ctx, dumpView, file, visible.Lines(len(lines)))

	fresh := newCollector()
	ref := engine.New(fresh, a.engineOptions()...)
	defer ref.Release()
	ref.VisibleRangesChanged(ctx, dumpView, file, visible.Lines(len(lines)))
	if err := ref.DocumentOpened(ctx, file, l, patched); err != nil {
		return err
	}

	got, want := live.tokens(lines), fresh.tokens(lines)
	zerolog.Ctx(ctx).Debug().Int("changes", len(changes)).Int("tokens", len(got)).Msg("replayed patch")
	if !reflect.DeepEqual(got, want) {
		return errors.Errorf("incremental result differs from a fresh parse: %s", firstDifference(got, want))
	}

	fmt.Fprintf(out, "applied %d changes, %d tokens, incremental and fresh parse agree\n", len(changes), len(got))
	if write {
		if err := os.WriteFile(file, []byte(patched), 0o644); err != nil {
			return errors.Errorf("writing %s: %w", file, err)
		}
	}
	return nil
}

func firstDifference(got []token, want []token) string {
	for i := 0; i < min(len(got), len(want)); i++ {
		if got[i] != want[i] {
			return fmt.Sprintf("token %d is %+v, want %+v", i, got[i], want[i])
		}
	}
	return fmt.Sprintf("%d tokens, want %d", len(got), len(want))
}
