package usage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// MarkerStore records when a prompt was submitted and hands the
// timestamp back exactly once. A missing marker yields zero, never an
// error: duration is a nice-to-have, not a requirement.
type MarkerStore interface {
	Put(sessionID string, at time.Time) error
	// Take returns the recorded timestamp and deletes it.
	Take(sessionID string) (time.Time, bool)
}

// FileMarkerStore keeps one marker file per session in a shared
// directory, holding a single ms-epoch integer. This is the
// cross-process variant used by the hook binaries.
type FileMarkerStore struct {
	Dir string
}

func NewFileMarkerStore(dir string) *FileMarkerStore {
	return &FileMarkerStore{Dir: dir}
}

func (s *FileMarkerStore) path(sessionID string) string {
	// Session IDs come from the host application; keep the filename flat.
	safe := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' {
			return r
		}
		return '_'
	}, sessionID)
	return filepath.Join(s.Dir, "voicebox-prompt-"+safe)
}

func (s *FileMarkerStore) Put(sessionID string, at time.Time) error {
	data := []byte(strconv.FormatInt(at.UnixMilli(), 10))
	if err := os.WriteFile(s.path(sessionID), data, 0o600); err != nil {
		return fmt.Errorf("write prompt marker: %w", err)
	}
	return nil
}

func (s *FileMarkerStore) Take(sessionID string) (time.Time, bool) {
	path := s.path(sessionID)
	data, err := os.ReadFile(path)
	if err != nil {
		return time.Time{}, false
	}
	// Read-once: remove regardless of parse outcome.
	os.Remove(path)

	ms, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// CacheMarkerStore is the in-process variant backed by a TTL cache.
// Stale markers from abandoned sessions expire on their own.
type CacheMarkerStore struct {
	c *cache.Cache
}

func NewCacheMarkerStore(ttl time.Duration) *CacheMarkerStore {
	return &CacheMarkerStore{c: cache.New(ttl, 10*time.Minute)}
}

func (s *CacheMarkerStore) Put(sessionID string, at time.Time) error {
	s.c.SetDefault(sessionID, at)
	return nil
}

func (s *CacheMarkerStore) Take(sessionID string) (time.Time, bool) {
	v, ok := s.c.Get(sessionID)
	if !ok {
		return time.Time{}, false
	}
	s.c.Delete(sessionID)
	at, ok := v.(time.Time)
	return at, ok
}

// ElapsedSince consumes the session marker and returns the wall-clock
// duration in milliseconds, or zero when no marker exists.
func ElapsedSince(store MarkerStore, sessionID string) int64 {
	at, ok := store.Take(sessionID)
	if !ok {
		return 0
	}
	ms := time.Since(at).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}
