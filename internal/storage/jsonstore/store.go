// Package jsonstore provides file-backed collection storage.
//
// Each collection lives in a single JSON file under the data directory and
// is rewritten whole on every save. A missing file reads as an empty
// collection. Before every mutation the service layer asks for a backup
// snapshot, which is written into a timestamped append-only directory.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"cotizador/internal/core/apperror"
)

// Store is the persistence collaborator consumed by the domain services.
type Store[T any] interface {
	// LoadAll reads the whole collection. A missing backing file yields an
	// empty slice, not an error.
	LoadAll(ctx context.Context) ([]T, error)

	// SaveAll rewrites the whole collection.
	SaveAll(ctx context.Context, items []T) error

	// CreateBackup copies the current backing file into the backup
	// directory under a timestamped name. No-op when the file is absent.
	CreateBackup(ctx context.Context) error
}

// FileStoreConfig configures a FileStore.
type FileStoreConfig struct {
	// Dir is the data directory holding the collection files.
	Dir string

	// Name is the collection name; the backing file is <Name>.json.
	Name string

	// Compress gzips backup snapshots (<name>-<ts>.json.gz).
	Compress bool
}

// FileStore is a JSON-file-backed Store implementation.
type FileStore[T any] struct {
	path      string
	backupDir string
	name      string
	compress  bool
	now       func() time.Time
}

// NewFileStore creates a FileStore for one collection.
func NewFileStore[T any](cfg FileStoreConfig) *FileStore[T] {
	return &FileStore[T]{
		path:      filepath.Join(cfg.Dir, cfg.Name+".json"),
		backupDir: filepath.Join(cfg.Dir, "backups"),
		name:      cfg.Name,
		compress:  cfg.Compress,
		now:       time.Now,
	}
}

// Path returns the backing file path.
func (s *FileStore[T]) Path() string {
	return s.path
}

// LoadAll implements Store.
func (s *FileStore[T]) LoadAll(ctx context.Context) ([]T, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}
		return nil, apperror.NewPersistence("read", err).WithDetail("collection", s.name)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, apperror.NewPersistence("decode", err).WithDetail("collection", s.name)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// SaveAll implements Store.
func (s *FileStore[T]) SaveAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return apperror.NewPersistence("encode", err).WithDetail("collection", s.name)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return apperror.NewPersistence("write", err).WithDetail("collection", s.name)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return apperror.NewPersistence("write", err).WithDetail("collection", s.name)
	}
	return nil
}

// CreateBackup implements Store.
func (s *FileStore[T]) CreateBackup(ctx context.Context) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Nothing to back up yet.
			return nil
		}
		return apperror.NewPersistence("backup read", err).WithDetail("collection", s.name)
	}

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return apperror.NewPersistence("backup write", err).WithDetail("collection", s.name)
	}

	name := fmt.Sprintf("%s-%s.json", s.name, backupTimestamp(s.now().UTC()))
	path := filepath.Join(s.backupDir, name)

	if s.compress {
		if err := writeGzip(path+".gz", data); err != nil {
			return apperror.NewPersistence("backup write", err).WithDetail("collection", s.name)
		}
		return nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperror.NewPersistence("backup write", err).WithDetail("collection", s.name)
	}
	return nil
}

// backupTimestamp renders an ISO timestamp with ':' and '.' replaced by '-',
// matching the historical backup file naming.
func backupTimestamp(t time.Time) string {
	ts := t.Format("2006-01-02T15:04:05.000Z07:00")
	ts = strings.ReplaceAll(ts, ":", "-")
	ts = strings.ReplaceAll(ts, ".", "-")
	return ts
}

func writeGzip(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
