package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/hoanghai1803/draftpress/internal/models"
)

// errorSentinelPrefix marks entries written by older versions of this tool
// when generation failed. Such entries are dropped on load and never
// written again.
const errorSentinelPrefix = "Error generating blog content"

// Store holds the generated blog entries in memory and mirrors them to a
// flat JSON file. Every mutation rewrites the whole file; there is no
// incremental format. Safe for concurrent use.
type Store struct {
	path string

	mu      sync.RWMutex
	entries []models.BlogEntry
}

// Open loads the store from path, creating an empty store when the file
// does not exist yet. Entries carrying the legacy error sentinel are
// dropped, and the cleaned list is rewritten to disk if anything was
// dropped. A file that cannot be parsed degrades to an empty store rather
// than failing startup.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store file: %w", err)
	}

	var loaded []models.BlogEntry
	if err := json.Unmarshal(data, &loaded); err != nil {
		slog.Warn("store file is corrupt, starting empty", "path", path, "error", err)
		return s, nil
	}

	for _, entry := range loaded {
		if strings.HasPrefix(entry.Content, errorSentinelPrefix) {
			slog.Warn("dropping error entry from store", "title", entry.Title)
			continue
		}
		s.entries = append(s.entries, entry)
	}

	// Rewrite immediately when error entries were filtered out, so the
	// file on disk never keeps them around.
	if len(s.entries) != len(loaded) {
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("rewriting cleaned store: %w", err)
		}
	}

	return s, nil
}

// Append adds entries to the store and rewrites the backing file once.
// Entries whose trimmed title is blank or already present
// (case-insensitive), and entries carrying the error sentinel, are
// skipped. Returns the number of entries actually added.
func (s *Store) Append(entries []models.BlogEntry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.titleSetLocked()
	added := 0
	for _, entry := range entries {
		key := strings.ToLower(strings.TrimSpace(entry.Title))
		if key == "" {
			continue
		}
		if _, ok := existing[key]; ok {
			continue
		}
		if strings.HasPrefix(entry.Content, errorSentinelPrefix) {
			continue
		}

		s.entries = append(s.entries, entry)
		existing[key] = struct{}{}
		added++
	}

	if err := s.save(); err != nil {
		return added, err
	}
	return added, nil
}

// Clear removes all entries and rewrites the backing file as an empty list.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return s.save()
}

// Entries returns a copy of the stored entries in insertion order.
func (s *Store) Entries() []models.BlogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.BlogEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// TitleSet returns the set of stored titles, trimmed and lowercased.
func (s *Store) TitleSet() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.titleSetLocked()
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// titleSetLocked builds the trimmed, lowercased title set. Caller must hold
// at least a read lock.
func (s *Store) titleSetLocked() map[string]struct{} {
	set := make(map[string]struct{}, len(s.entries))
	for _, entry := range s.entries {
		set[strings.ToLower(strings.TrimSpace(entry.Title))] = struct{}{}
	}
	return set
}

// save writes the full entry list to the backing file as two-space-indented
// JSON with HTML escaping disabled. An empty store is written as an empty
// array, never as null. Caller must hold the write lock.
func (s *Store) save() error {
	entries := s.entries
	if entries == nil {
		entries = []models.BlogEntry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing store file: %w", err)
	}
	return nil
}
