package probe

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeLog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestPhraseAbsent_InvertedPolarity(t *testing.T) {
	path := writeLog(t, "app.log", "line one\nline two\nerrorX\n")

	// found phrase => false
	if PhraseAbsent(path, "errorX", SearchWindow{LastLines: 1}) {
		t.Fatalf("phrase on last line: want false (found)")
	}
	// absent phrase => true
	if !PhraseAbsent(path, "notpresent", SearchWindow{LastLines: 1}) {
		t.Fatalf("phrase absent: want true")
	}
}

func TestPhraseAbsent_TailWindowLimits(t *testing.T) {
	path := writeLog(t, "app.log", "errorX\nclean line\nanother clean line\n")

	// errorX is outside the 2-line window
	if !PhraseAbsent(path, "errorX", SearchWindow{LastLines: 2}) {
		t.Fatalf("phrase above window: want true (not found)")
	}
	// widen the window and it is found again
	if PhraseAbsent(path, "errorX", SearchWindow{LastLines: 3}) {
		t.Fatalf("phrase inside window: want false")
	}
}

func TestPhraseAbsent_WholeFile(t *testing.T) {
	path := writeLog(t, "service.txt", "start\nsomewhere a failure happened\nend\n")

	if PhraseAbsent(path, "failure", SearchWindow{}) {
		t.Fatalf("phrase in file: want false")
	}
	if !PhraseAbsent(path, "success", SearchWindow{}) {
		t.Fatalf("phrase missing: want true")
	}
}

func TestPhraseAbsent_WindowOnUnknownExtension(t *testing.T) {
	path := writeLog(t, "messages", "old noise\nrecent errorY\n")

	if PhraseAbsent(path, "errorY", SearchWindow{LastLines: 1}) {
		t.Fatalf("line count given: tail strategy applies regardless of extension")
	}
}

func TestPhraseAbsent_GlobTimeWindow(t *testing.T) {
	dir := t.TempDir()
	inWindow := filepath.Join(dir, "a.2024")
	outWindow := filepath.Join(dir, "b.2024")
	if err := os.WriteFile(inWindow, []byte("hit inside\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(outWindow, []byte("hit outside\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	now := time.Now()
	if err := os.Chtimes(inWindow, now, now.Add(-time.Hour)); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := os.Chtimes(outWindow, now, now.Add(-48*time.Hour)); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	w := SearchWindow{From: now.Add(-2 * time.Hour), To: now}
	pattern := filepath.Join(dir, "*.2024")

	if PhraseAbsent(pattern, "hit inside", w) {
		t.Fatalf("phrase in the in-window file: want false")
	}
	// the out-of-window file must not be searched
	if !PhraseAbsent(pattern, "hit outside", w) {
		t.Fatalf("out-of-window file searched, want true")
	}
}

func TestPhraseAbsent_GlobNoFileInWindow(t *testing.T) {
	dir := t.TempDir()
	w := SearchWindow{
		From: time.Now().Add(-2 * time.Hour),
		To:   time.Now().Add(-time.Hour),
	}
	if !PhraseAbsent(filepath.Join(dir, "*.gz"), "anything", w) {
		t.Fatalf("no candidate file: want true (not found)")
	}
}

func TestPhraseAbsent_MissingFile(t *testing.T) {
	if !PhraseAbsent("/nonexistent/app.log", "boom", SearchWindow{}) {
		t.Fatalf("missing file counts as not found")
	}
}

func TestPhraseAbsent_EmptyInputs(t *testing.T) {
	if PhraseAbsent("", "", SearchWindow{LastLines: 5}) {
		t.Fatalf("both empty: want false unconditionally")
	}
	if PhraseAbsent("   ", "", SearchWindow{}) {
		t.Fatalf("blank path with empty phrase: want false")
	}
}

func TestPhraseAbsent_NoStrategy(t *testing.T) {
	// no matching extension, no line count, no time bounds
	if PhraseAbsent("/var/log/messages", "anything", SearchWindow{}) {
		t.Fatalf("no applicable strategy: want false")
	}
}
