package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"tscolor/internal/classify"
	"tscolor/internal/engine"
	"tscolor/internal/lang"
)

// langUsage is the help text of every --lang flag.
func langUsage(what string) string {
	names := make([]string, 0, len(lang.Supported()))
	for _, id := range lang.Supported() {
		names = append(names, string(id))
	}
	return what + " (" + strings.Join(names, ", ") + ")"
}

func newViewCommand(a *app) *cobra.Command {
	var langName string
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Open a file in the terminal viewer with live semantic coloring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runView(cmd.Context(), args[0], langName, !noWatch)
		},
	}
	cmd.Flags().StringVar(&langName, "lang", "", langUsage("language override"))
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not follow changes made to the file on disk")
	return cmd
}

func (a *app) runView(ctx context.Context, path string, langName string, watch bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Errorf("resolving %s: %w", path, err)
	}
	text, l, err := loadDocument(abs, langName)
	if err != nil {
		return err
	}

	scr := newScreen()
	eng := engine.New(scr, a.engineOptions()...)
	defer eng.Release()

	if err := eng.DocumentOpened(ctx, abs, l, text); err != nil {
		return err
	}
	defer eng.DocumentClosed(abs)
	defer scr.dropView(mainView)
	defer eng.CloseView(mainView)

	var watcher *fileWatcher
	if watch {
		watcher, err = newFileWatcher(abs)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("file watching disabled")
		} else {
			defer watcher.Close()
		}
	}

	m := newModel(ctx, a.cfg, eng, scr, abs, l, watcher)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return errors.Errorf("tscolor failed: %w", err)
	}
	return nil
}

func newThemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the available color themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range ThemeNames() {
				marker := " "
				if name == appTheme.Name {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
			}
		},
	}
}

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages with semantic coloring and the categories each one produces",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			r := classify.DefaultRegistry()
			for _, id := range r.Languages() {
				c, _ := r.Lookup(id)
				styles := make([]string, 0, len(c.Categories()))
				for _, cat := range c.Categories() {
					styles = append(styles, cat.StyleName())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-11s %s\n", id, strings.Join(styles, ", "))
			}
		},
	}
}
