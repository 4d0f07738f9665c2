// Package filestore owns the local-disk file area for complaint
// attachments. Files are written fully before a submission counts as
// stored; downloads stream straight from disk.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"complaintwall/backend/internal/models"
)

// ErrMissing means the metadata points at a file that is gone from disk.
var ErrMissing = errors.New("stored file missing")

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]`)

// Store is a directory-backed attachment area.
type Store struct {
	Dir string
}

// New ensures the upload directory exists and returns the store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Store{Dir: dir}, nil
}

// SanitizeName replaces every character outside [a-zA-Z0-9.-_] with an
// underscore, matching the naming rule of the upload area.
func SanitizeName(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// Save buffers an uploaded stream to disk under a collision-resistant
// name (<epoch millis>-<random int>-<sanitized original>) and returns the
// attachment metadata. On write failure the partial file is removed.
func (s *Store) Save(originalName, mimeType string, r io.Reader) (models.Attachment, error) {
	stored := fmt.Sprintf("%d-%d-%s", time.Now().UnixMilli(), rand.IntN(1_000_000_000), SanitizeName(originalName))
	path := filepath.Join(s.Dir, stored)

	f, err := os.Create(path)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("create %s: %w", path, err)
	}
	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return models.Attachment{}, fmt.Errorf("write %s: %w", path, err)
	}

	return models.Attachment{
		FileName:     stored,
		OriginalName: originalName,
		MIMEType:     mimeType,
		Size:         size,
		Path:         path,
	}, nil
}

// Open returns a reader over a stored attachment, or ErrMissing when the
// file no longer exists despite the metadata.
func (s *Store) Open(att models.Attachment) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.Dir, att.FileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrMissing
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}
