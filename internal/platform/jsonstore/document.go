// Package jsonstore persists an ordered sequence of records as a single
// pretty-printed JSON document.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// ErrWrite marks a failed document write. The previous document is left intact.
var ErrWrite = errors.New("jsonstore: write failed")

// Document is a JSON array of T stored at a fixed path. All reads and writes
// go through one mutex so read-modify-write cycles never interleave.
type Document[T any] struct {
	path   string
	logger *slog.Logger
	now    func() time.Time

	mu     sync.Mutex
	rename func(oldpath, newpath string) error
}

// New binds a document to path. A nil logger discards log output.
func New[T any](path string, logger *slog.Logger) *Document[T] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Document[T]{
		path:   path,
		logger: logger.With(slog.String("document", filepath.Base(path))),
		now:    time.Now,
		rename: os.Rename,
	}
}

// Path returns the backing file location.
func (d *Document[T]) Path() string {
	return d.path
}

// Ensure creates the parent directory and an empty document when missing.
func (d *Document[T]) Ensure() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(d.path), 0o700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if _, err := os.Stat(d.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", filepath.Base(d.path), err)
	}
	if err := d.writeLocked([]byte("[]")); err != nil {
		return fmt.Errorf("%w: initialize %s: %v", ErrWrite, filepath.Base(d.path), err)
	}
	d.logger.Info("created empty document")
	return nil
}

// Load returns the stored records in order. A missing, unreadable or
// malformed document yields an empty slice; the failure is logged only.
func (d *Document[T]) Load(ctx context.Context) []T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loadLocked(ctx)
}

// Save replaces the document with records. The new content is rendered and
// written to a temp file before it is renamed over the old one.
func (d *Document[T]) Save(ctx context.Context, records []T) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saveLocked(ctx, records)
}

// Update runs fn on the current records and saves what it returns. When fn
// fails its error is returned as is and nothing is written.
func (d *Document[T]) Update(ctx context.Context, fn func(records []T) ([]T, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	next, err := fn(d.loadLocked(ctx))
	if err != nil {
		return err
	}
	return d.saveLocked(ctx, next)
}

func (d *Document[T]) loadLocked(ctx context.Context) []T {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			d.logger.WarnContext(ctx, "failed to read document, treating as empty", slog.String("error", err.Error()))
		}
		return []T{}
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		d.logger.WarnContext(ctx, "document is not valid JSON, treating as empty", slog.String("error", err.Error()))
		d.quarantineLocked(ctx)
		return []T{}
	}
	if records == nil {
		records = []T{}
	}
	return records
}

func (d *Document[T]) saveLocked(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to encode document", slog.String("error", err.Error()))
		return fmt.Errorf("%w: encode %s: %v", ErrWrite, filepath.Base(d.path), err)
	}
	if err := d.writeLocked(data); err != nil {
		d.logger.ErrorContext(ctx, "failed to write document", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %s: %v", ErrWrite, filepath.Base(d.path), err)
	}
	return nil
}

func (d *Document[T]) writeLocked(data []byte) error {
	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer func() {
		if f != nil {
			_ = f.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		f = nil
		_ = os.Remove(tmpName)
		return err
	}
	f = nil

	if err := d.rename(tmpName, d.path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// quarantineLocked moves a malformed document aside so the next save cannot
// overwrite the only copy of whatever it contained.
func (d *Document[T]) quarantineLocked(ctx context.Context) {
	target := d.path + ".corrupt-" + strconv.FormatInt(d.now().Unix(), 10)
	if err := os.Rename(d.path, target); err != nil {
		d.logger.WarnContext(ctx, "failed to move malformed document aside", slog.String("error", err.Error()))
		return
	}
	d.logger.WarnContext(ctx, "moved malformed document aside", slog.String("backup", filepath.Base(target)))
}
