// Package logs manages the directory of saved console transcripts: saving
// new ones, listing them newest first with an outcome category, and
// deleting or watching them.
package logs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sibikrish3000/scriptrun/internal/logger"
	"github.com/sibikrish3000/scriptrun/pkg/workerpool"
)

// FileNameLayout is the timestamp part of a saved log's name.
const FileNameLayout = "2006-01-02_15-04-05"

// Ext is the extension of every saved log.
const Ext = ".log"

var (
	// ErrNothingToSave is returned when the transcript is blank.
	ErrNothingToSave = errors.New("nothing to save")
	// ErrInvalidName is returned for names that are not plain log file names.
	ErrInvalidName = errors.New("invalid log name")
)

// Entry describes one saved log.
type Entry struct {
	Name     string
	Path     string
	ModTime  time.Time
	Size     int64
	Category Category
}

type cachedCategory struct {
	modTime  time.Time
	size     int64
	category Category
}

// Library is a directory of saved logs.
type Library struct {
	dir string

	// Concurrency bounds how many files are classified at once.
	Concurrency int

	now func() time.Time

	mu    sync.Mutex
	cache map[string]cachedCategory
}

// NewLibrary returns a Library rooted at dir. The directory is created on
// the first Save.
func NewLibrary(dir string) *Library {
	return &Library{
		dir:         dir,
		Concurrency: 4,
		now:         time.Now,
		cache:       make(map[string]cachedCategory),
	}
}

// Dir returns the directory holding the logs.
func (l *Library) Dir() string {
	return l.dir
}

// FileName builds the log name for a script saved at t; an empty script
// path yields "output_<time>.log".
func FileName(scriptPath string, t time.Time) string {
	base := "output"
	if scriptPath != "" {
		base = strings.TrimSuffix(filepath.Base(scriptPath), filepath.Ext(scriptPath))
	}
	return base + "_" + t.Format(FileNameLayout) + Ext
}

// Save writes text verbatim to a new log named after scriptPath and
// returns its full path.
func (l *Library) Save(scriptPath, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrNothingToSave
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating log dir: %w", err)
	}
	path := filepath.Join(l.dir, FileName(scriptPath, l.now()))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", err
	}
	logger.Debug("log saved", "path", path, "bytes", len(text))
	return path, nil
}

// List returns the saved logs, newest first. A non-empty filter keeps only
// logs of that category. A missing directory lists as empty.
func (l *Library) List(ctx context.Context, filter Category) ([]Entry, error) {
	dirEntries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(strings.ToLower(de.Name()), Ext) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:    de.Name(),
			Path:    filepath.Join(l.dir, de.Name()),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}

	l.classify(ctx, entries)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ModTime.After(entries[j].ModTime)
	})

	if filter == "" {
		return entries, nil
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.Category == filter {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

// classify fills in Category for every entry, reading only files whose
// size or modification time changed since they were last classified.
func (l *Library) classify(ctx context.Context, entries []Entry) {
	var pending []int
	l.mu.Lock()
	for i := range entries {
		c, ok := l.cache[entries[i].Path]
		if ok && c.modTime.Equal(entries[i].ModTime) && c.size == entries[i].Size {
			entries[i].Category = c.category
			continue
		}
		pending = append(pending, i)
	}
	l.mu.Unlock()
	if len(pending) == 0 {
		return
	}

	results := workerpool.Map(ctx, l.Concurrency, pending, func(_ context.Context, i int) (Category, error) {
		return Classify(entries[i].Path), nil
	})

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		e := &entries[r.Job]
		e.Category = r.Value
		l.cache[e.Path] = cachedCategory{modTime: e.ModTime, size: e.Size, category: r.Value}
	}
}

func (l *Library) pathOf(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(l.dir, name), nil
}

// Read returns the contents of the named log.
func (l *Library) Read(name string) (string, error) {
	path, err := l.pathOf(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Delete removes the named log.
func (l *Library) Delete(name string) error {
	path, err := l.pathOf(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return err
	}
	l.forget(path)
	return nil
}

// Clear removes every saved log and reports how many were deleted. It
// keeps going after a failure and returns the first error.
func (l *Library) Clear() (int, error) {
	dirEntries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	removed := 0
	var firstErr error
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(strings.ToLower(de.Name()), Ext) {
			continue
		}
		path := filepath.Join(l.dir, de.Name())
		if err := os.Remove(path); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		l.forget(path)
		removed++
	}
	return removed, firstErr
}

func (l *Library) forget(path string) {
	l.mu.Lock()
	delete(l.cache, path)
	l.mu.Unlock()
}
