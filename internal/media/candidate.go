// Package media describes the user-selected payload of a submission.
package media

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Candidate is a file selected for identification. It is never mutated;
// a new selection produces a new Candidate.
type Candidate struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// IsZero reports whether no file was selected.
func (c Candidate) IsZero() bool {
	return c.Open == nil
}

// FromFile builds a Candidate from a path on disk, resolving the content
// type from the file extension.
func FromFile(path string) (Candidate, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Candidate{}, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return Candidate{}, fmt.Errorf("%s is a directory", path)
	}
	return Candidate{
		Name:        filepath.Base(path),
		ContentType: TypeForName(path),
		Size:        info.Size(),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// FromBytes builds an in-memory Candidate.
func FromBytes(name, contentType string, data []byte) Candidate {
	return Candidate{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// TypeForName maps a filename extension to a declared content type.
// Unknown extensions fall through to application/octet-stream, which the
// validator then rejects.
func TypeForName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".avi":
		return "video/x-msvideo"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
