package main

import (
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// location is a 1-based position in a file, the way editors take it.
type location struct {
	File string
	Line int
	Col  int
}

func (l location) target() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// openLocation hands loc to the configured editor command, or to the first
// platform opener found.
func openLocation(loc location, editorCmd string) error {
	if strings.TrimSpace(editorCmd) != "" {
		name, args, err := buildEditorCommand(editorCmd, loc)
		if err != nil {
			return err
		}
		if _, err := exec.LookPath(name); err != nil {
			return errors.Errorf("editor command not found: %s", name)
		}
		return exec.Command(name, args...).Start()
	}

	commands, unavailable := openFileCommands(loc.File)
	commands = append([][]string{{"zed", loc.target()}}, commands...)
	if found, err := runFirstAvailableCommand(commands, runCommandStart); found {
		return err
	}
	return unavailable
}

// buildEditorCommand splits template like a shell would and substitutes
// {file}, {line}, {col} and {target}.
func buildEditorCommand(template string, loc location) (string, []string, error) {
	parts, err := splitCommandLine(strings.TrimSpace(template))
	if err != nil {
		return "", nil, err
	}
	if len(parts) == 0 {
		return "", nil, errors.New("editor command is empty")
	}

	repl := strings.NewReplacer(
		"{file}", loc.File,
		"{line}", strconv.Itoa(loc.Line),
		"{col}", strconv.Itoa(loc.Col),
		"{target}", loc.target(),
	)
	for i := range parts {
		parts[i] = repl.Replace(parts[i])
	}
	return parts[0], parts[1:], nil
}

func splitCommandLine(input string) ([]string, error) {
	var parts []string
	var current strings.Builder

	tokenActive := false
	var quote rune

	flush := func() {
		if !tokenActive {
			return
		}
		parts = append(parts, current.String())
		current.Reset()
		tokenActive = false
	}

	for _, r := range input {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			current.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			tokenActive = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			current.WriteRune(r)
			tokenActive = true
		}
	}

	if quote != 0 {
		return nil, errors.New("editor command has unclosed quote")
	}

	flush()
	return parts, nil
}

func openFileCommands(path string) ([][]string, error) {
	switch runtime.GOOS {
	case "darwin":
		return [][]string{{"open", path}}, errors.New("zed and open are unavailable")
	case "linux":
		return [][]string{{"xdg-open", path}}, errors.New("zed and xdg-open are unavailable")
	case "windows":
		return [][]string{{"explorer.exe", path}, {"cmd", "/C", "start", "", path}}, errors.New("zed and explorer are unavailable")
	default:
		return nil, errors.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

func clipboardCommands() ([][]string, error) {
	switch runtime.GOOS {
	case "darwin":
		return [][]string{{"pbcopy"}}, errors.New("pbcopy is unavailable")
	case "linux":
		return [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}, errors.New("no clipboard utility found (install wl-copy, xclip, or xsel)")
	case "windows":
		return [][]string{{"clip"}}, errors.New("clip is unavailable")
	default:
		return nil, errors.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

func copyToClipboard(s string) error {
	commands, unavailable := clipboardCommands()
	found, err := runFirstAvailableCommand(commands, func(name string, args []string) error {
		return pipeStringToCommand(s, name, args...)
	})
	if found {
		return err
	}
	return unavailable
}

func runCommandStart(name string, args []string) error {
	return exec.Command(name, args...).Start()
}

// runFirstAvailableCommand runs the first candidate found on PATH and reports
// whether there was one.
func runFirstAvailableCommand(candidates [][]string, run func(name string, args []string) error) (bool, error) {
	for _, candidate := range candidates {
		if len(candidate) == 0 {
			continue
		}
		if _, err := exec.LookPath(candidate[0]); err != nil {
			continue
		}
		return true, run(candidate[0], candidate[1:])
	}
	return false, nil
}

func pipeStringToCommand(input string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	in, err := cmd.StdinPipe()
	if err != nil {
		return errors.WithStack(err)
	}
	if err := cmd.Start(); err != nil {
		return errors.WithStack(err)
	}
	if _, err := io.WriteString(in, input); err != nil {
		_ = in.Close()
		_ = cmd.Wait()
		return errors.WithStack(err)
	}
	if err := in.Close(); err != nil {
		_ = cmd.Wait()
		return errors.WithStack(err)
	}
	return errors.WithStack(cmd.Wait())
}
