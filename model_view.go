package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	header := m.renderHeader()
	body := m.renderCode(m.width, m.codeHeight())
	footer := m.renderFooter()
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m model) renderHeader() string {
	fileStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(appTheme.Header)).Bold(true)
	modeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(appTheme.Text)).Background(lipgloss.Color(appTheme.InputBG)).Padding(0, 1)
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(appTheme.Muted))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(appTheme.Error))

	name := filepath.Base(m.path)
	if m.dirty {
		name += " [+]"
	}
	status := fmt.Sprintf(" %s | %d:%d | %d lines", m.lang, m.row+1, m.col+1, len(m.lines))
	if m.status != "" {
		status += " | " + m.status
	}

	line := modeStyle.Render(m.modeName()) + " " + fileStyle.Render(name) + statusStyle.Render(status)
	if m.errMsg != "" {
		line += "  " + errStyle.Render(m.errMsg)
	}
	return truncateANSI(line, m.width)
}

func (m model) renderFooter() string {
	if m.mode == modeGoto {
		return m.input.View()
	}
	return m.help.View(m.keys)
}

func (m model) renderCode(width int, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	tildeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(appTheme.Dim))
	codeW := max(0, width-7)

	lines := make([]string, 0, height)
	for i := 0; i < height; i++ {
		row := m.offset + i
		if row >= len(m.lines) {
			lines = append(lines, tildeStyle.Render("     ~"))
			continue
		}

		text := m.lines[row]
		current := row == m.row
		cursor := -1
		if current {
			cursor = m.col
		}
		styles := m.screen.lineStyles(mainView, row, len(text))
		code := renderCodeLine(text, styles, codeW, current, cursor)
		if current {
			code = padRightANSI(code, codeW)
		}
		lines = append(lines, renderLineNumber(row, current)+code)
	}

	return strings.Join(lines, "\n")
}

func truncateANSI(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
