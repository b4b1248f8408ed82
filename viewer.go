package main

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"tscolor/internal/edit"
	"tscolor/internal/engine"
	"tscolor/internal/lang"
	"tscolor/internal/readfile"
	"tscolor/internal/visible"
)

// mainView is the single view the viewer shows its document in.
const mainView = "main"

type inputMode int

const (
	modeNormal inputMode = iota
	modeInsert
	modeGoto
)

type model struct {
	ctx     context.Context
	cfg     settings
	engine  *engine.Engine
	screen  *screen
	watcher *fileWatcher

	path  string
	lang  lang.ID
	lines []string

	width  int
	height int

	row    int
	col    int
	offset int
	shown  visible.Range

	mode  inputMode
	input textinput.Model
	keys  keyMap
	help  help.Model

	dirty  bool
	status string
	errMsg string
}

func newModel(ctx context.Context, cfg settings, eng *engine.Engine, scr *screen, path string, l lang.ID, watcher *fileWatcher) model {
	input := textinput.New()
	input.Prompt = "line> "
	input.CharLimit = 12
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(appTheme.Accent))

	m := model{
		ctx:     ctx,
		cfg:     cfg,
		engine:  eng,
		screen:  scr,
		watcher: watcher,
		path:    path,
		lang:    l,
		input:   input,
		keys:    defaultKeyMap(),
		help:    help.New(),
		shown:   visible.Range{Start: -1, End: -1},
	}
	m.syncLines()
	return m
}

func (m model) Init() tea.Cmd {
	return m.watchNext()
}

func (m model) watchNext() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.next()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ensureCursor()
		m.syncViewport()
		return m, nil

	case fileChangedMsg:
		m.reloadFromDisk()
		m.ensureCursor()
		m.syncViewport()
		return m, m.watchNext()

	case watchErrMsg:
		m.errMsg = "watch: " + msg.err.Error()
		return m, m.watchNext()

	case tea.KeyMsg:
		var cmd tea.Cmd
		switch m.mode {
		case modeGoto:
			cmd = m.updateGoto(msg)
		case modeInsert:
			cmd = m.updateInsert(msg)
		default:
			cmd = m.updateNormal(msg)
		}
		m.ensureCursor()
		m.syncViewport()
		return m, cmd
	}

	return m, nil
}

func (m *model) updateNormal(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.row--
	case key.Matches(msg, m.keys.Down):
		m.row++
	case key.Matches(msg, m.keys.Left):
		m.col = prevRuneStart(m.currentLine(), m.col)
	case key.Matches(msg, m.keys.Right):
		m.col = nextRuneStart(m.currentLine(), m.col)
	case key.Matches(msg, m.keys.PageUp):
		m.row -= m.codeHeight()
	case key.Matches(msg, m.keys.PageDown):
		m.row += m.codeHeight()
	case key.Matches(msg, m.keys.Top):
		m.row = 0
	case key.Matches(msg, m.keys.Bottom):
		m.row = len(m.lines) - 1
	case key.Matches(msg, m.keys.Insert):
		m.mode = modeInsert
		m.status = ""
	case key.Matches(msg, m.keys.Goto):
		m.mode = modeGoto
		m.input.SetValue("")
		return m.input.Focus()
	case key.Matches(msg, m.keys.Save):
		m.save()
	case key.Matches(msg, m.keys.Open):
		if err := openLocation(m.location(), m.cfg.EditorCmd); err != nil {
			m.status = "open failed: " + err.Error()
		}
	case key.Matches(msg, m.keys.Copy):
		loc := m.location().target()
		if err := copyToClipboard(loc); err != nil {
			m.status = "copy failed: " + err.Error()
		} else {
			m.status = "copied " + loc
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *model) updateGoto(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.input.Blur()
		return nil
	case tea.KeyEnter:
		m.mode = modeNormal
		m.input.Blur()
		n, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
		if err != nil || n < 1 {
			m.status = "not a line number: " + m.input.Value()
			return nil
		}
		m.row = n - 1
		m.col = 0
		m.offset = max(0, m.row-m.codeHeight()/4)
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *model) updateInsert(msg tea.KeyMsg) tea.Cmd {
	line := m.currentLine()
	offset := lineOffset(m.lines, m.row) + m.col

	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyCtrlS:
		m.save()
	case tea.KeyUp:
		m.row--
	case tea.KeyDown:
		m.row++
	case tea.KeyLeft:
		m.col = prevRuneStart(line, m.col)
	case tea.KeyRight:
		m.col = nextRuneStart(line, m.col)
	case tea.KeyRunes, tea.KeySpace:
		if msg.Alt {
			return nil
		}
		text := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			text = " "
		}
		m.change(edit.Change{Offset: offset, Text: text})
		m.col += len(text)
	case tea.KeyTab:
		m.change(edit.Change{Offset: offset, Text: "\t"})
		m.col++
	case tea.KeyEnter:
		m.change(edit.Change{Offset: offset, Text: "\n"})
		m.row++
		m.col = 0
	case tea.KeyBackspace:
		switch {
		case m.col > 0:
			prev := prevRuneStart(line, m.col)
			m.change(edit.Change{Offset: offset - (m.col - prev), RemovedLength: m.col - prev})
			m.col = prev
		case m.row > 0:
			// Join with the previous line.
			col := len(m.lines[m.row-1])
			m.change(edit.Change{Offset: offset - 1, RemovedLength: 1})
			m.row--
			m.col = col
		}
	case tea.KeyDelete:
		switch {
		case m.col < len(line):
			next := nextRuneStart(line, m.col)
			m.change(edit.Change{Offset: offset, RemovedLength: next - m.col})
		case m.row < len(m.lines)-1:
			m.change(edit.Change{Offset: offset, RemovedLength: 1})
		}
	}
	return nil
}

// change forwards one edit to the engine, which reparses and redecorates.
func (m *model) change(c edit.Change) {
	if err := m.engine.DocumentChanged(m.ctx, m.path, []edit.Change{c}); err != nil {
		m.errMsg = err.Error()
		zerolog.Ctx(m.ctx).Error().Err(err).Str("doc", m.path).Msg("applying edit")
	}
	m.dirty = true
	m.syncLines()
}

func (m *model) save() {
	text, _ := m.engine.Text(m.path)
	perm := os.FileMode(0o644)
	if info, err := os.Stat(m.path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(m.path, []byte(text), perm); err != nil {
		m.errMsg = "save failed: " + err.Error()
		return
	}
	m.dirty = false
	m.status = "saved"
}

// reloadFromDisk turns an external rewrite of the file into the minimal
// change against what the engine holds. Unsaved edits win over the disk.
func (m *model) reloadFromDisk() {
	text, err := readfile.ReadNormalized(m.path)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	current, _ := m.engine.Text(m.path)
	c, ok := edit.Diff(current, text)
	if !ok {
		return
	}
	if m.dirty {
		m.status = "file changed on disk, keeping unsaved edits"
		return
	}
	if err := m.engine.DocumentChanged(m.ctx, m.path, []edit.Change{c}); err != nil {
		m.errMsg = err.Error()
	}
	m.syncLines()
	m.status = "reloaded"
	zerolog.Ctx(m.ctx).Debug().Str("doc", m.path).Int("offset", c.Offset).Msg("external change applied")
}

func (m *model) syncLines() {
	text, _ := m.engine.Text(m.path)
	m.lines = strings.Split(text, "\n")
}

// syncViewport tells the engine which rows are on screen when that changed.
func (m *model) syncViewport() {
	if m.height <= 0 {
		return
	}
	rng := visible.Range{Start: m.offset, End: m.offset + m.codeHeight() - 1}
	if rng == m.shown {
		return
	}
	m.shown = rng
	m.engine.VisibleRangesChanged(m.ctx, mainView, m.path, []visible.Range{rng})
}

func (m *model) ensureCursor() {
	m.row = clamp(m.row, 0, max(0, len(m.lines)-1))
	m.col = snapColumn(m.currentLine(), m.col)

	page := m.codeHeight()
	if m.row < m.offset {
		m.offset = m.row
	}
	if m.row >= m.offset+page {
		m.offset = m.row - page + 1
	}
	maxOffset := max(0, len(m.lines)-page)
	m.offset = clamp(m.offset, 0, maxOffset)
}

func (m model) currentLine() string {
	if m.row < 0 || m.row >= len(m.lines) {
		return ""
	}
	return m.lines[m.row]
}

func (m model) location() location {
	return location{File: m.path, Line: m.row + 1, Col: m.col + 1}
}

func (m model) modeName() string {
	switch m.mode {
	case modeInsert:
		return "INSERT"
	case modeGoto:
		return "GOTO"
	default:
		return "NORMAL"
	}
}

func (m model) codeHeight() int {
	return max(1, m.height-1-lipgloss.Height(m.renderFooter()))
}
