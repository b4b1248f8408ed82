package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"tscolor/internal/edit"
	"tscolor/internal/engine"
	"tscolor/internal/metrics"
	"tscolor/internal/visible"
)

type benchStats struct {
	min, max, total time.Duration
	n               int
}

func (s *benchStats) add(d time.Duration) {
	if s.n == 0 || d < s.min {
		s.min = d
	}
	s.max = max(s.max, d)
	s.total += d
	s.n++
}

func (s benchStats) String() string {
	if s.n == 0 {
		return "no samples"
	}
	return fmt.Sprintf("n=%d min=%s avg=%s max=%s", s.n, s.min, s.total/time.Duration(s.n), s.max)
}

func newBenchCommand(a *app) *cobra.Command {
	var langName string
	var iterations int

	cmd := &cobra.Command{
		Use:   "bench FILE",
		Short: "Time whole-document classification and single-character reparses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBench(cmd.Context(), cmd.OutOrStdout(), args[0], langName, iterations)
		},
	}
	cmd.Flags().StringVar(&langName, "lang", "", langUsage("language override"))
	cmd.Flags().IntVar(&iterations, "iterations", 10, "number of timed runs")
	return cmd
}

func (a *app) runBench(ctx context.Context, out io.Writer, file string, langName string, iterations int) error {
	if iterations < 1 {
		return errors.New("--iterations must be at least 1")
	}
	text, l, err := loadDocument(file, langName)
	if err != nil {
		return err
	}

	m := a.metrics
	if m == nil {
		m = metrics.New()
	}
	fullBefore, fullTimeBefore := m.ParseStats(string(l), metrics.Full)
	incBefore, incTimeBefore := m.ParseStats(string(l), metrics.Incremental)
	classifiedBefore := m.Classified(string(l))
	eng := engine.New(newCollector(), append(a.engineOptions(), engine.WithMetrics(m))...)
	defer eng.Release()

	start := time.Now()
	if err := eng.DocumentOpened(ctx, file, l, text); err != nil {
		return err
	}
	parse := time.Since(start)

	var classify benchStats
	nodes := 0
	for range iterations {
		start := time.Now()
		res, ok := eng.Classify(file, visible.Everything)
		if !ok {
			return errors.Errorf("no classifier for %s (%s)", file, l)
		}
		classify.add(time.Since(start))
		nodes = res.Len()
	}

	// Insert and remove a space in the middle of the document.
	var reparse benchStats
	mid := snapColumn(text, len(text)/2)
	for range iterations {
		for _, c := range []edit.Change{{Offset: mid, Text: " "}, {Offset: mid, RemovedLength: 1}} {
			start := time.Now()
			if err := eng.DocumentChanged(ctx, file, []edit.Change{c}); err != nil {
				return err
			}
			reparse.add(time.Since(start))
		}
	}

	fmt.Fprintf(out, "%s (%s, %d bytes)\n", file, l, len(text))
	fmt.Fprintf(out, "full parse:    %s\n", parse)
	fmt.Fprintf(out, "classify:      %s (%d nodes)\n", classify, nodes)
	fmt.Fprintf(out, "edit+reparse:  %s\n", reparse)

	// The parser alone, as the store recorded it.
	full, fullTime := m.ParseStats(string(l), metrics.Full)
	inc, incTime := m.ParseStats(string(l), metrics.Incremental)
	fmt.Fprintf(out, "parser:        full=%d (%s) incremental=%d (%s)\n",
		full-fullBefore, fullTime-fullTimeBefore, inc-incBefore, incTime-incTimeBefore)
	fmt.Fprintf(out, "classified:    %d nodes\n", m.Classified(string(l))-classifiedBefore)
	return nil
}
