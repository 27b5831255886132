// Package filestore reads and writes buffer files through an afero
// filesystem. The operating system filesystem is used in production and
// in-memory filesystems in tests.
package filestore

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/spf13/afero"
)

const (
	defaultMaxFileSize int64       = 10 * 1024 * 1024 // 10MB
	defaultPerm        fs.FileMode = 0o644
)

// Store loads and saves whole files.
type Store struct {
	fs          afero.Fs
	maxFileSize int64 // 0 = unlimited
	perm        fs.FileMode
}

// Option configures a Store.
type Option func(*Store)

// WithMaxFileSize sets the maximum file size accepted by Load.
func WithMaxFileSize(size int64) Option {
	return func(s *Store) {
		s.maxFileSize = size
	}
}

// WithPerm sets the mode used when Save creates a file.
func WithPerm(perm fs.FileMode) Option {
	return func(s *Store) {
		s.perm = perm
	}
}

// New creates a store over fsys.
func New(fsys afero.Fs, opts ...Option) *Store {
	s := &Store{
		fs:          fsys,
		maxFileSize: defaultMaxFileSize,
		perm:        defaultPerm,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewOS creates a store over the operating system filesystem.
func NewOS(opts ...Option) *Store {
	return New(afero.NewOsFs(), opts...)
}

// Load returns the contents of path. A missing file yields an error
// matching fs.ErrNotExist.
func (s *Store) Load(path string) ([]byte, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return nil, &PathError{Op: "load", Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &PathError{Op: "load", Path: path, Err: ErrIsDirectory}
	}
	if s.maxFileSize > 0 && info.Size() > s.maxFileSize {
		return nil, &PathError{Op: "load", Path: path, Err: ErrFileTooLarge}
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, &PathError{Op: "load", Path: path, Err: err}
	}
	if IsBinary(data) {
		return nil, &PathError{Op: "load", Path: path, Err: ErrBinaryFile}
	}
	// Lines are edited as runes; invalid bytes would not survive a save
	if !utf8.Valid(data) {
		return nil, &PathError{Op: "load", Path: path, Err: ErrInvalidEncoding}
	}
	return data, nil
}

// Save replaces the contents of path with data, creating the file if
// needed. An existing file keeps its mode.
func (s *Store) Save(path string, data []byte) error {
	perm := s.perm
	if info, err := s.fs.Stat(path); err == nil {
		if info.IsDir() {
			return &PathError{Op: "save", Path: path, Err: ErrIsDirectory}
		}
		perm = info.Mode().Perm()
	}

	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return &PathError{Op: "save", Path: path, Err: err}
	}

	_, werr := f.Write(data)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		return &PathError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// IsBinary attempts to detect if content is binary (not text).
// Uses heuristics: presence of null bytes, high ratio of control characters.
func IsBinary(content []byte) bool {
	if len(content) == 0 {
		return false
	}

	// Check first 8KB at most
	sample := content[:min(len(content), 8192)]

	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}

	nonText := 0
	for _, b := range sample {
		if b < 32 && b != '\t' && b != '\n' && b != '\r' {
			nonText++
		}
	}

	// More than 10% control characters
	return nonText*10 > len(sample)
}
