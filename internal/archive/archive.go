// Package archive reads CI artifact archives and locates the report documents
// and screenshots inside them.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrArchiveOpen is returned when an archive cannot be opened or decoded at all
var ErrArchiveOpen = errors.New("failed to read archive")

// Archive is a byte-addressable container of named entries
type Archive interface {
	// Entries lists entry paths in archive order
	Entries() []string
	ReadText(ctx context.Context, name string) (string, error)
	ReadBlob(ctx context.Context, name string) ([]byte, error)
}

// ZipArchive is an Archive backed by a ZIP file
type ZipArchive struct {
	name    string
	hash    string
	reader  *zip.Reader
	closer  io.Closer
	files   map[string]*zip.File
	entries []string
}

// Open opens the ZIP archive at path
func Open(path string) (*ZipArchive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveOpen, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrArchiveOpen, err)
	}

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: hash %s: %v", ErrArchiveOpen, path, err)
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrArchiveOpen, err)
	}

	a := newZipArchive(path, hex.EncodeToString(h.Sum(nil)), zr)
	a.closer = f
	return a, nil
}

// OpenBytes opens an in-memory ZIP archive
func OpenBytes(name string, data []byte) (*ZipArchive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveOpen, err)
	}
	sum := sha256.Sum256(data)
	return newZipArchive(name, hex.EncodeToString(sum[:]), zr), nil
}

func newZipArchive(name, hash string, zr *zip.Reader) *ZipArchive {
	a := &ZipArchive{
		name:    name,
		hash:    hash,
		reader:  zr,
		files:   make(map[string]*zip.File, len(zr.File)),
		entries: make([]string, 0, len(zr.File)),
	}
	for _, f := range zr.File {
		if _, dup := a.files[f.Name]; dup {
			continue
		}
		a.files[f.Name] = f
		a.entries = append(a.entries, f.Name)
	}
	return a
}

// Name returns the path or label the archive was opened from
func (a *ZipArchive) Name() string {
	return a.name
}

// Hash returns the hex SHA-256 of the archive bytes
func (a *ZipArchive) Hash() string {
	return a.hash
}

// Entries returns all entry paths in archive order
func (a *ZipArchive) Entries() []string {
	out := make([]string, len(a.entries))
	copy(out, a.entries)
	return out
}

// ReadText reads an entry as text
func (a *ZipArchive) ReadText(ctx context.Context, name string) (string, error) {
	data, err := a.ReadBlob(ctx, name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadBlob reads an entry as raw bytes
func (a *ZipArchive) ReadBlob(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, ok := a.files[name]
	if !ok {
		return nil, fmt.Errorf("entry not found: %s", name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open entry %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read entry %s: %w", name, err)
	}
	return data, nil
}

// Close releases the underlying file, if any
func (a *ZipArchive) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
