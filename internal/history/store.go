// Package history persists analysis batches.
//
// The primary store is a directory of timestamped JSON files, one per batch.
// File names sort lexicographically in chronological order, so "newest" is
// just the last name. An optional SQL-backed track store mirrors runs into a
// database for querying across machines.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/janus-clew/clew/internal/contract"
	"github.com/janus-clew/clew/schema"
)

// FileStore is the append-only growth history backed by a directory of
// JSON files.
type FileStore struct {
	dir string
}

var _ contract.HistoryStore = &FileStore{} // Compile-time check

// NewFileStore creates a history store rooted at dir. The directory is
// created lazily on first append.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the directory backing the store.
func (s *FileStore) Dir() string {
	return s.dir
}

// Append persists one batch as a new timestamped file. The write goes to a
// temp file first and is renamed into place, so concurrent readers never see
// a partial entry. Batches landing in the same second get a zero-padded
// numeric suffix instead of overwriting each other; padding keeps the
// lexicographic order chronological past ten appends in one second.
func (s *FileStore) Append(batch *schema.AnalysisBatch) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &contract.StorageWriteError{Path: s.dir, Err: err}
	}

	name := batch.HistoryFileName()
	target := filepath.Join(s.dir, name)
	for i := 1; fileExists(target); i++ {
		base := strings.TrimSuffix(name, ".json")
		target = filepath.Join(s.dir, fmt.Sprintf("%s_%02d.json", base, i))
	}

	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return &contract.StorageWriteError{Path: target, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, ".clew-*")
	if err != nil {
		return &contract.StorageWriteError{Path: target, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &contract.StorageWriteError{Path: target, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &contract.StorageWriteError{Path: target, Err: err}
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return &contract.StorageWriteError{Path: target, Err: err}
	}
	return nil
}

// Entry pairs a stored batch with its on-disk file name.
type Entry struct {
	Name  string
	Batch *schema.AnalysisBatch
}

// LoadAll returns all stored entries, newest first. Files that fail to parse
// are skipped; a history damaged in one entry should not hide the rest.
func (s *FileStore) LoadAll() ([]Entry, error) {
	names, err := s.listNames()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		data, readErr := os.ReadFile(filepath.Join(s.dir, name))
		if readErr != nil {
			continue
		}
		var batch schema.AnalysisBatch
		if jsonErr := json.Unmarshal(data, &batch); jsonErr != nil {
			continue
		}
		entries = append(entries, Entry{Name: name, Batch: &batch})
	}
	return entries, nil
}

// Latest returns the most recent batch, or nil when the history is empty.
func (s *FileStore) Latest() (*schema.AnalysisBatch, error) {
	entries, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return entries[0].Batch, nil
}

// Count returns the number of stored entries.
func (s *FileStore) Count() (int, error) {
	names, err := s.listNames()
	if err != nil {
		return 0, err
	}
	return len(names), nil
}

// Clear removes every stored entry and reports how many were deleted.
func (s *FileStore) Clear() (int, error) {
	names, err := s.listNames()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, name := range names {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			return removed, &contract.StorageWriteError{Path: filepath.Join(s.dir, name), Err: err}
		}
		removed++
	}
	return removed, nil
}

// Delete removes a single entry by file name. The name must be a bare
// history file name; anything resembling a path is rejected to keep deletes
// confined to the store directory.
func (s *FileStore) Delete(name string) error {
	if name != filepath.Base(name) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid history file name %q", name)
	}
	if !strings.HasSuffix(name, ".json") {
		return fmt.Errorf("invalid history file name %q: must end in .json", name)
	}
	path := filepath.Join(s.dir, name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no history entry named %q", name)
		}
		return &contract.StorageWriteError{Path: path, Err: err}
	}
	return nil
}

// listNames returns stored file names sorted newest first.
func (s *FileStore) listNames() ([]string, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &contract.StorageReadError{Path: s.dir, Err: err}
	}

	var names []string
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".") {
			continue
		}
		names = append(names, name)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
