package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"tscolor/internal/decorate"
	"tscolor/internal/engine"
	"tscolor/internal/lang"
	"tscolor/internal/visible"
)

// dumpView is the view batch commands decorate.
const dumpView = "dump"

// collector is a renderer that keeps the latest ranges of each style for a
// single view.
type collector struct {
	ranges map[string][]decorate.Range
}

func newCollector() *collector {
	return &collector{ranges: make(map[string][]decorate.Range)}
}

func (c *collector) StyleHandle(name string) decorate.Handle { return name }

func (c *collector) ApplyRanges(_ string, h decorate.Handle, ranges []decorate.Range) {
	name, _ := h.(string)
	if len(ranges) == 0 {
		delete(c.ranges, name)
		return
	}
	c.ranges[name] = ranges
}

type token struct {
	Style    string `yaml:"style"`
	StartRow int    `yaml:"start_row"`
	StartCol int    `yaml:"start_col"`
	EndRow   int    `yaml:"end_row"`
	EndCol   int    `yaml:"end_col"`
	Text     string `yaml:"text"`
}

// tokens flattens the collected ranges in document order.
func (c *collector) tokens(lines []string) []token {
	var out []token
	for style, ranges := range c.ranges {
		for _, r := range ranges {
			out = append(out, token{
				Style:    style,
				StartRow: r.StartRow,
				StartCol: r.StartCol,
				EndRow:   r.EndRow,
				EndCol:   r.EndCol,
				Text:     rangeText(lines, r),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.StartRow != b.StartRow {
			return a.StartRow < b.StartRow
		}
		if a.StartCol != b.StartCol {
			return a.StartCol < b.StartCol
		}
		return a.Style < b.Style
	})
	return out
}

func rangeText(lines []string, r decorate.Range) string {
	if r.StartRow < 0 || r.StartRow >= len(lines) {
		return ""
	}
	if r.StartRow == r.EndRow {
		line := lines[r.StartRow]
		return line[clamp(r.StartCol, 0, len(line)):clamp(r.EndCol, 0, len(line))]
	}
	first := lines[r.StartRow]
	return first[clamp(r.StartCol, 0, len(first)):] + "..."
}

type dumpResult struct {
	File   string  `yaml:"file"`
	Lang   lang.ID `yaml:"lang"`
	Tokens []token `yaml:"tokens"`
}

type dumpOptions struct {
	langName string
	rows     string
	format   string
	jobs     int
}

func newDumpCommand(a *app) *cobra.Command {
	var opts dumpOptions

	cmd := &cobra.Command{
		Use:   "dump FILE...",
		Short: "Print the semantic tokens of files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDump(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.langName, "lang", "", langUsage("language override for every file"))
	cmd.Flags().StringVar(&opts.rows, "rows", "", "only classify rows START:END (0-based, inclusive) as if they were on screen")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text or yaml")
	cmd.Flags().IntVar(&opts.jobs, "jobs", 4, "files classified in parallel")
	return cmd
}

func (a *app) runDump(ctx context.Context, out io.Writer, files []string, opts dumpOptions) error {
	if opts.format != "text" && opts.format != "yaml" {
		return errors.Errorf("unknown format %q (use text or yaml)", opts.format)
	}
	var rows []visible.Range
	if opts.rows != "" {
		r, err := parseRows(opts.rows)
		if err != nil {
			return err
		}
		rows = []visible.Range{r}
	}

	// Every file gets its own engine: stores and parsers are never shared
	// between goroutines.
	results := make([]dumpResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.jobs))
	for i, file := range files {
		g.Go(func() error {
			res, err := a.dumpFile(gctx, file, opts.langName, rows)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return errors.Errorf("encoding yaml: %w", err)
		}
		return errors.WithStack(enc.Close())
	}

	var b bytes.Buffer
	for _, res := range results {
		fmt.Fprintf(&b, "== %s (%s)\n", res.File, res.Lang)
		for _, t := range res.Tokens {
			fmt.Fprintf(&b, "%d:%d-%d:%d\t%s\t%s\n", t.StartRow+1, t.StartCol+1, t.EndRow+1, t.EndCol+1, t.Style, t.Text)
		}
	}
	_, err := out.Write(b.Bytes())
	return errors.WithStack(err)
}

func (a *app) dumpFile(ctx context.Context, file string, langName string, rows []visible.Range) (dumpResult, error) {
	text, l, err := loadDocument(file, langName)
	if err != nil {
		return dumpResult{}, err
	}
	lines := strings.Split(text, "\n")
	if rows == nil {
		rows = visible.Lines(len(lines))
	}

	col := newCollector()
	eng := engine.New(col, a.engineOptions()...)
	defer eng.Release()

	eng.VisibleRangesChanged(ctx, dumpView, file, rows)
	if err := eng.DocumentOpened(ctx, file, l, text); err != nil {
		return dumpResult{}, err
	}
	return dumpResult{File: file, Lang: l, Tokens: col.tokens(lines)}, nil
}

func parseRows(s string) (visible.Range, error) {
	var r visible.Range
	if _, err := fmt.Sscanf(s, "%d:%d", &r.Start, &r.End); err != nil {
		return r, errors.Errorf("invalid --rows %q, want START:END: %w", s, err)
	}
	if r.Start < 0 || r.End < r.Start {
		return r, errors.Errorf("invalid --rows %q, want 0 <= START <= END", s)
	}
	return r, nil
}
