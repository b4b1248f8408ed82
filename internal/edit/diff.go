package edit

import (
	"unicode/utf8"
)

// Diff finds the single change that turns old into new by trimming their
// common prefix and suffix. It reports false when the texts are equal.
// Boundaries are kept on rune starts so Text is valid UTF-8.
func Diff(old string, new string) (Change, bool) {
	if old == new {
		return Change{}, false
	}

	prefix := 0
	limit := min(len(old), len(new))
	for prefix < limit && old[prefix] == new[prefix] {
		prefix++
	}
	for prefix > 0 && prefix < len(old) && !utf8.RuneStart(old[prefix]) {
		prefix--
	}

	suffix := 0
	for suffix < limit-prefix && old[len(old)-1-suffix] == new[len(new)-1-suffix] {
		suffix++
	}
	for suffix > 0 && !utf8.RuneStart(new[len(new)-suffix]) {
		suffix--
	}

	return Change{
		Offset:        prefix,
		RemovedLength: len(old) - prefix - suffix,
		Text:          new[prefix : len(new)-suffix],
	}, true
}
