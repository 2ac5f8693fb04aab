// Package docstore provides read/write access to the collection files and
// the question image directory under a single data root.
//
// Reads tolerate the legacy bare-array file form; writes always normalize
// to the versioned envelope and replace the file atomically. Read failures
// are logged and surfaced as an error next to an empty slice so callers can
// degrade to an empty collection or choose to care.
package docstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"examdesk/internal/schema"
)

const (
	dirPerms = 0o750

	dbDirName             = "db"
	imagesDirName         = "images"
	questionImagesDirName = "questions"
)

// Store is the sole writer of the collection files under one data root.
// Every operation is a whole-file read or whole-file replace; callers must
// not interleave two writes to the same collection.
type Store struct {
	root string
	log  *zap.Logger
}

// New creates a store rooted at dataDir. A nil logger is replaced with a
// no-op one.
func New(dataDir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}

	return &Store{root: dataDir, log: log}
}

// Root returns the data root directory.
func (s *Store) Root() string { return s.root }

// DBDir returns the directory holding the collection files.
func (s *Store) DBDir() string { return filepath.Join(s.root, dbDirName) }

// ImagesDir returns the directory holding question images.
func (s *Store) ImagesDir() string { return filepath.Join(s.root, imagesDirName) }

// QuestionImagesDir returns the reserved images/questions sub-directory.
func (s *Store) QuestionImagesDir() string {
	return filepath.Join(s.ImagesDir(), questionImagesDirName)
}

// FilePath returns the absolute path of a collection file.
func (s *Store) FilePath(kind schema.Kind) string {
	return filepath.Join(s.DBDir(), kind.FileName())
}

// EnsureDirectories creates the data root, db, images, and images/questions
// directories. Idempotent; fails only if creation itself errors.
func (s *Store) EnsureDirectories() error {
	dirs := []string{s.root, s.DBDir(), s.ImagesDir(), s.QuestionImagesDir()}

	for _, dir := range dirs {
		err := os.MkdirAll(dir, dirPerms)
		if err != nil {
			return fmt.Errorf("%w: create directory %s: %v", ErrIO, dir, err)
		}
	}

	return nil
}

// Read loads a collection's record sequence. A missing file yields an empty
// slice and no error; unreadable or malformed content yields an empty slice
// and the error, already logged. A parseable document of any other shape
// yields an empty slice.
func Read[T any](s *Store, kind schema.Kind) ([]T, error) {
	path := s.FilePath(kind)

	raw, err := os.ReadFile(path) //nolint:gosec // path derives from configured data dir
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}

		s.log.Error("read collection", zap.String("kind", string(kind)), zap.Error(err))

		return []T{}, fmt.Errorf("%w: %s: %v", ErrRead, kind, err)
	}

	records, err := decodeCollection[T](raw)
	if err != nil {
		s.log.Error("decode collection", zap.String("kind", string(kind)), zap.Error(err))

		return []T{}, fmt.Errorf("%w: %s: %v", ErrRead, kind, err)
	}

	if records == nil {
		s.log.Warn("collection has unexpected shape, treating as empty",
			zap.String("kind", string(kind)))

		return []T{}, nil
	}

	return records, nil
}

// decodeCollection decodes envelope or legacy bare-array content. Returns
// (nil, nil) for parseable content of another shape.
func decodeCollection[T any](raw []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	switch trimmed[0] {
	case '{':
		var env schema.Envelope[T]

		err := json.Unmarshal(trimmed, &env)
		if err != nil {
			return nil, err
		}

		if env.Data == nil {
			return []T{}, nil
		}

		return env.Data, nil
	case '[':
		// Legacy form: a bare array with no envelope.
		var records []T

		err := json.Unmarshal(trimmed, &records)
		if err != nil {
			return nil, err
		}

		return records, nil
	default:
		return nil, nil
	}
}

// Write replaces a collection file with a fresh envelope holding records.
// The version of an existing envelope is preserved; legacy or absent files
// get version 1.0.0, which upgrades legacy files on their next write.
func Write[T any](s *Store, kind schema.Kind, records []T) error {
	err := s.EnsureDirectories()
	if err != nil {
		return err
	}

	if records == nil {
		records = []T{}
	}

	env := schema.Envelope[T]{
		Version:     s.currentVersion(kind),
		LastUpdated: schema.NowISO(),
		Data:        records,
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, kind, err)
	}

	path := s.FilePath(kind)

	err = atomic.WriteFile(path, bytes.NewReader(data))
	if err != nil {
		s.log.Error("write collection", zap.String("kind", string(kind)), zap.Error(err))

		return fmt.Errorf("%w: %s: %v", ErrWrite, kind, err)
	}

	return nil
}

// currentVersion returns the version of the existing envelope, or the
// current version for legacy, absent, or unreadable files.
func (s *Store) currentVersion(kind schema.Kind) string {
	raw, err := os.ReadFile(s.FilePath(kind)) //nolint:gosec // path derives from configured data dir
	if err != nil {
		return schema.CurrentVersion
	}

	var probe struct {
		Version string `json:"version"`
	}

	err = json.Unmarshal(raw, &probe)
	if err != nil || probe.Version == "" {
		return schema.CurrentVersion
	}

	return probe.Version
}
