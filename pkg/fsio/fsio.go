// Copyright 2025 the taskvault authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fsio

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 FileStore is the byte-stream storage interface used by the document
// store and the audit log. Implementations must create parent directories
// on write and must never leave a partially written file visible.
type FileStore interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
	AppendLine(ctx context.Context, path string, line []byte) error
	Truncate(ctx context.Context, path string) error
	FileExists(ctx context.Context, path string) (bool, error)
}

// 🗄️ StorageError wraps an underlying filesystem failure. Both the
// document store and the audit log surface it unmodified.
type StorageError struct {
	Op   string // read, write, append, truncate
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return "storage " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// 🔧 OS implements FileStore against the local filesystem.
type OS struct{}

// 🏭 NewOS creates a filesystem-backed FileStore.
func NewOS() *OS {
	return &OS{}
}

func (s *OS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}
	return content, nil
}

// WriteFileAtomic writes content to a temp file next to path and renames it
// into place, so readers never observe a torn write.
func (s *OS) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &StorageError{Op: "write", Path: path, Err: errors.Errorf("creating parent directories: %w", err)}
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return &StorageError{Op: "write", Path: path, Err: errors.Errorf("writing temp file: %w", err)}
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return &StorageError{Op: "write", Path: path, Err: errors.Errorf("renaming temp file: %w", err)}
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("wrote file atomically")
	return nil
}

// AppendLine appends line plus a trailing newline to the end of path,
// creating the file and its parent directories if absent.
func (s *OS) AppendLine(ctx context.Context, path string, line []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &StorageError{Op: "append", Path: path, Err: errors.Errorf("creating parent directories: %w", err)}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return &StorageError{Op: "append", Path: path, Err: errors.Errorf("opening file: %w", err)}
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return &StorageError{Op: "append", Path: path, Err: errors.Errorf("writing line: %w", err)}
	}

	return nil
}

// Truncate resets path to zero length, creating it if absent.
func (s *OS) Truncate(ctx context.Context, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &StorageError{Op: "truncate", Path: path, Err: errors.Errorf("creating parent directories: %w", err)}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return &StorageError{Op: "truncate", Path: path, Err: errors.Errorf("truncating file: %w", err)}
	}
	return f.Close()
}

func (s *OS) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, &StorageError{Op: "stat", Path: path, Err: err}
}
