package probe

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SearchWindow narrows a log phrase search: a trailing line count, or a
// modification-time window applied when the path is a glob pattern.
type SearchWindow struct {
	LastLines int
	From      time.Time
	To        time.Time
}

// PhraseAbsent reports whether phrase is NOT present in the content
// selected by path and the window. The inverted sense is deliberate: it
// preserves the contract of the fact layer this feeds, which checks
// whether the match output was empty. Found means false.
//
// Strategy, in order:
//  1. .log/.txt path with a line count: search only the last N lines.
//  2. .log/.txt path without a line count: search the whole file.
//  3. no line count but both time bounds set: treat path as a glob and
//     search the newest file whose mtime falls inside [From, To].
//  4. any other path with a line count: search the last N lines.
//  5. nothing applicable: false.
//
// A missing or unreadable file counts as "phrase not found". An empty
// phrase with a blank path short-circuits to false.
func PhraseAbsent(path, phrase string, w SearchWindow) bool {
	if phrase == "" && strings.TrimSpace(path) == "" {
		return false
	}

	ext := filepath.Ext(path)
	plainLog := ext == ".log" || ext == ".txt"

	switch {
	case plainLog && w.LastLines > 0:
		return !phraseInTail(path, phrase, w.LastLines)
	case plainLog:
		return !phraseInFile(path, phrase)
	case w.LastLines == 0 && !w.From.IsZero() && !w.To.IsZero():
		match := newestWithin(path, w.From, w.To)
		if match == "" {
			return true
		}
		return !phraseInFile(match, phrase)
	case w.LastLines > 0:
		return !phraseInTail(path, phrase, w.LastLines)
	}
	return false
}

func phraseInFile(path, phrase string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), phrase)
}

// phraseInTail searches the last n lines only, like tail -n piped to grep.
func phraseInTail(path, phrase string, n int) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if n < len(lines) {
		lines = lines[len(lines)-n:]
	}
	return strings.Contains(strings.Join(lines, "\n"), phrase)
}

// newestWithin expands the glob pattern and returns the most recently
// modified file whose mtime lies in [from, to], or "" when none does.
func newestWithin(pattern string, from, to time.Time) string {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return ""
	}
	var (
		best      string
		bestMtime time.Time
	)
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		mt := info.ModTime()
		if mt.Before(from) || mt.After(to) {
			continue
		}
		if best == "" || mt.After(bestMtime) {
			best = m
			bestMtime = mt
		}
	}
	return best
}
