package edit

import (
	"bytes"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
	"gitlab.com/tozd/go/errors"
)

// FromUnifiedDiff converts the hunks of a single-file unified diff into an
// ordered change batch against text. Each change is expressed against the text
// left by the previous one, matching TranslateAll.
func FromUnifiedDiff(text string, patch []byte) ([]Change, error) {
	files, err := diff.ParseMultiFileDiff(patch)
	if err != nil {
		return nil, errors.Errorf("parse patch: %w", err)
	}
	if len(files) != 1 {
		return nil, errors.Errorf("patch touches %d files, want exactly 1", len(files))
	}

	changes := make([]Change, 0, len(files[0].Hunks))
	shift := 0
	current := text
	for i, h := range files[0].Hunks {
		oldSide, newSide := hunkSides(h)

		startLine := int(h.OrigStartLine) - 1 + shift
		if h.OrigLines == 0 {
			startLine = int(h.OrigStartLine) + shift
		}
		offset, ok := lineOffset(current, startLine)
		if !ok || !strings.HasPrefix(current[offset:], oldSide) {
			return nil, errors.Errorf("hunk %d (@@ -%d,%d) does not apply", i+1, h.OrigStartLine, h.OrigLines)
		}

		c := Change{Offset: offset, RemovedLength: len(oldSide), Text: newSide}
		changes = append(changes, c)
		current = Apply(current, c)
		shift += int(h.NewLines) - int(h.OrigLines)
	}
	return changes, nil
}

// hunkSides rebuilds the old and new text a hunk covers. The parser already
// dropped the newline of a final context or added line; a removed last line
// keeps it in the body and is flagged by OrigNoNewlineAt instead.
func hunkSides(h *diff.Hunk) (string, string) {
	var oldSide, newSide []byte
	for _, line := range strings.SplitAfter(string(h.Body), "\n") {
		if line == "" {
			continue
		}
		switch line[0] {
		case ' ':
			oldSide = append(oldSide, line[1:]...)
			newSide = append(newSide, line[1:]...)
		case '-':
			oldSide = append(oldSide, line[1:]...)
		case '+':
			newSide = append(newSide, line[1:]...)
		}
	}
	if h.OrigNoNewlineAt > 0 {
		oldSide = bytes.TrimSuffix(oldSide, []byte("\n"))
	}
	return string(oldSide), string(newSide)
}

// lineOffset is the byte offset where 0-based line starts; the line just past
// the end of text starts at len(text).
func lineOffset(text string, line int) (int, bool) {
	if line < 0 {
		return 0, false
	}
	offset := 0
	for i := 0; i < line; i++ {
		next := strings.IndexByte(text[offset:], '\n')
		if next < 0 {
			if i == line-1 {
				return len(text), true
			}
			return 0, false
		}
		offset += next + 1
	}
	return offset, true
}
