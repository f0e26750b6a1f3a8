package usage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileMarkerStoreRoundTrip(t *testing.T) {
	store := NewFileMarkerStore(t.TempDir())
	at := time.Now().Add(-45 * time.Second).Truncate(time.Millisecond)

	if err := store.Put("session-abc", at); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := store.Take("session-abc")
	if !ok {
		t.Fatal("Take returned no marker")
	}
	if !got.Equal(at) {
		t.Errorf("Take = %v, want %v", got, at)
	}

	// Read-once: the second Take must miss.
	if _, ok := store.Take("session-abc"); ok {
		t.Error("second Take found a marker, want read-once semantics")
	}
}

func TestFileMarkerStoreMissing(t *testing.T) {
	store := NewFileMarkerStore(t.TempDir())
	if _, ok := store.Take("never-written"); ok {
		t.Error("Take found a marker that was never written")
	}
}

func TestFileMarkerStoreSanitizesSessionID(t *testing.T) {
	dir := t.TempDir()
	store := NewFileMarkerStore(dir)

	// Path separators in the session ID must not escape the marker dir.
	if err := store.Put("../../etc/passwd", time.Now()); err != nil {
		t.Fatalf("Put: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 marker file in %s, found %d", dir, len(entries))
	}
	if _, ok := store.Take("../../etc/passwd"); !ok {
		t.Error("Take did not find the sanitized marker")
	}
}

func TestFileMarkerStoreCorruptContents(t *testing.T) {
	dir := t.TempDir()
	store := NewFileMarkerStore(dir)
	if err := os.WriteFile(filepath.Join(dir, "voicebox-prompt-bad"), []byte("not a number"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, ok := store.Take("bad"); ok {
		t.Error("Take accepted corrupt marker contents")
	}
	// The corrupt file is still consumed.
	if _, err := os.Stat(filepath.Join(dir, "voicebox-prompt-bad")); !os.IsNotExist(err) {
		t.Error("corrupt marker file was not removed")
	}
}

func TestCacheMarkerStore(t *testing.T) {
	store := NewCacheMarkerStore(time.Minute)
	at := time.Now().Add(-2 * time.Second)

	if err := store.Put("s1", at); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok := store.Take("s1")
	if !ok || !got.Equal(at) {
		t.Errorf("Take = %v, %v", got, ok)
	}
	if _, ok := store.Take("s1"); ok {
		t.Error("second Take found a marker")
	}
}

func TestElapsedSince(t *testing.T) {
	store := NewCacheMarkerStore(time.Minute)
	store.Put("s1", time.Now().Add(-1500*time.Millisecond))

	ms := ElapsedSince(store, "s1")
	if ms < 1500 || ms > 5000 {
		t.Errorf("ElapsedSince = %dms, want roughly 1500ms", ms)
	}

	if got := ElapsedSince(store, "missing"); got != 0 {
		t.Errorf("ElapsedSince(missing) = %d, want 0", got)
	}
}
