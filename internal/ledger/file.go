package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// fileDocument is the on-disk JSON layout.
type fileDocument struct {
	UsedTopics   []string  `json:"used_topics"`
	LastCategory *string   `json:"last_category"`
	LastUpdate   *string   `json:"last_update"`
	Stats        fileStats `json:"stats"`
}

type fileStats struct {
	TotalGenerated int            `json:"total_generated"`
	ByCategory     map[string]int `json:"by_category"`
}

// Timestamps written by older tooling carry no zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// File is a ledger stored as a single JSON document. Only one process may
// write a given path.
type File struct {
	path string

	mu     sync.Mutex
	loaded bool
	usage  Usage
}

// NewFile returns a ledger backed by the JSON file at path. The file is
// created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Usage implements Ledger.
func (f *File) Usage(ctx context.Context) (Usage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.ensureLoaded(); err != nil {
		return Usage{}, err
	}
	return f.usage.Clone(), nil
}

// Record implements Ledger.
func (f *File) Record(ctx context.Context, keyword, category string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.ensureLoaded(); err != nil {
		return err
	}

	next := f.usage.Clone()
	apply(&next, keyword, category, at)
	if err := f.save(next); err != nil {
		return err
	}
	f.usage = next
	return nil
}

// ResetCategory implements Ledger.
func (f *File) ResetCategory(ctx context.Context, category string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.ensureLoaded(); err != nil {
		return 0, err
	}

	next := f.usage.Clone()
	removed := removeCategory(&next, category)
	if removed == 0 {
		return 0, nil
	}
	if err := f.save(next); err != nil {
		return 0, err
	}
	f.usage = next
	return removed, nil
}

func (f *File) ensureLoaded() error {
	if f.loaded {
		return nil
	}
	u, err := f.load()
	if err != nil {
		return err
	}
	f.usage = u
	f.loaded = true
	return nil
}

func (f *File) load() (Usage, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Usage{ByCategory: make(map[string]int)}, nil
		}
		return Usage{}, &PersistenceError{Op: "load", Path: f.path, Err: err}
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Usage{}, &PersistenceError{Op: "load", Path: f.path, Err: fmt.Errorf("decode: %w", err)}
	}

	u := Usage{
		ByCategory:     doc.Stats.ByCategory,
		TotalGenerated: doc.Stats.TotalGenerated,
	}
	if u.ByCategory == nil {
		u.ByCategory = make(map[string]int)
	}
	for _, k := range doc.UsedTopics {
		u.Used = append(u.Used, Normalize(k))
	}
	if doc.LastCategory != nil {
		u.LastCategory = *doc.LastCategory
	}
	if doc.LastUpdate != nil {
		u.LastUpdate = parseTimestamp(*doc.LastUpdate)
	}
	return u, nil
}

func (f *File) save(u Usage) error {
	doc := fileDocument{
		UsedTopics: u.Used,
		Stats: fileStats{
			TotalGenerated: u.TotalGenerated,
			ByCategory:     u.ByCategory,
		},
	}
	if doc.UsedTopics == nil {
		doc.UsedTopics = []string{}
	}
	if u.LastCategory != "" {
		doc.LastCategory = &u.LastCategory
	}
	if !u.LastUpdate.IsZero() {
		ts := u.LastUpdate.Format(time.RFC3339Nano)
		doc.LastUpdate = &ts
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "save", Path: f.path, Err: err}
	}

	if err := writeFileAtomic(f.path, data); err != nil {
		return &PersistenceError{Op: "save", Path: f.path, Err: err}
	}
	return nil
}

// writeFileAtomic replaces path with data via a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
