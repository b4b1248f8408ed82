package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// renderCodeLine draws one source line within width cells. styles holds the
// decoration style name of every byte (nil for an undecorated line). cursor
// is the byte column to draw the cursor at, or -1.
func renderCodeLine(text string, styles []string, width int, selected bool, cursor int) string {
	if width <= 0 {
		return ""
	}

	styleAt := func(i int) string {
		if i < len(styles) {
			return styles[i]
		}
		return ""
	}

	var b strings.Builder
	used := 0
	for i := 0; i < len(text); {
		style, atCursor := styleAt(i), i == cursor
		var seg strings.Builder
		segW := 0
		j := i
		for j < len(text) {
			if styleAt(j) != style || (j == cursor) != atCursor || (j > i && atCursor) {
				break
			}
			r, size := utf8.DecodeRuneInString(text[j:])
			w := cellWidth(r)
			if used+segW+w > width {
				break
			}
			if r == '\t' {
				seg.WriteString(strings.Repeat(" ", tabWidth))
			} else {
				seg.WriteRune(r)
			}
			segW += w
			j += size
		}
		if j == i {
			break
		}
		b.WriteString(decorationStyle(style, selected, atCursor).Render(seg.String()))
		used += segW
		i = j
	}

	if cursor >= len(text) && used < width {
		b.WriteString(decorationStyle("", selected, true).Render(" "))
	}
	return b.String()
}

// decorationStyle is the lipgloss style for a decoration style name.
func decorationStyle(name string, selected bool, cursor bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(appTheme.Color(name)))
	if selected {
		style = style.Background(lipgloss.Color(appTheme.SelectionBG))
	}
	switch name {
	case "keyword":
		style = style.Bold(true)
	case "macro":
		style = style.Italic(true)
	}
	if cursor {
		style = style.Reverse(true)
	}
	return style
}

func renderLineNumber(row int, current bool) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(appTheme.Dim))
	if current {
		style = style.Foreground(lipgloss.Color(appTheme.Accent))
	}
	return style.Render(fmt.Sprintf("%6d ", row+1))
}
