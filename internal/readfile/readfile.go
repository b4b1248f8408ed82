// Package readfile loads source files with CRLF line endings folded to LF, so
// byte offsets and rows agree with what the parser sees.
package readfile

import (
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"
)

func ReadNormalized(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Errorf("reading %s: %w", path, err)
	}
	return Normalize(string(data)), nil
}

func Normalize(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
