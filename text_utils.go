package main

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const tabWidth = 4

func truncateText(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))

	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

func padRightANSI(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func clamp(v int, lo int, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// cellWidth is the number of terminal cells r takes; tabs expand to tabWidth.
func cellWidth(r rune) int {
	if r == '\t' {
		return tabWidth
	}
	return runewidth.RuneWidth(r)
}

// prevRuneStart is the byte column of the rune before col.
func prevRuneStart(line string, col int) int {
	if col <= 0 {
		return 0
	}
	col = min(col, len(line))
	_, size := utf8.DecodeLastRuneInString(line[:col])
	return col - size
}

// nextRuneStart is the byte column after the rune at col.
func nextRuneStart(line string, col int) int {
	if col >= len(line) {
		return len(line)
	}
	_, size := utf8.DecodeRuneInString(line[col:])
	return col + size
}

// snapColumn moves col back onto a rune boundary inside line.
func snapColumn(line string, col int) int {
	col = clamp(col, 0, len(line))
	for col > 0 && col < len(line) && !utf8.RuneStart(line[col]) {
		col--
	}
	return col
}

// lineOffset is the byte offset of the start of row in the joined text.
func lineOffset(lines []string, row int) int {
	off := 0
	for i := 0; i < row && i < len(lines); i++ {
		off += len(lines[i]) + 1
	}
	return off
}
