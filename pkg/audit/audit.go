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

package audit

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/taskvault/taskvault/pkg/fsio"
	"gitlab.com/tozd/go/errors"
)

// 📜 Operation is the kind of mutation an entry records.
type Operation string

const (
	OpCreate Operation = "CREATE"
	OpUpdate Operation = "UPDATE"
	OpDelete Operation = "DELETE"
)

// DefaultActor is recorded when the caller supplies no identity.
const DefaultActor = "system"

// 🧾 Entry is one immutable fact about an accepted mutating operation.
// Details carries the operation-specific payload: a full record snapshot
// for CREATE/DELETE, a change-set plus resulting version for UPDATE.
type Entry struct {
	Timestamp time.Time       `json:"timestamp"`
	Operation Operation       `json:"operation"`
	RecordID  string          `json:"record_id"`
	Actor     string          `json:"actor"`
	Details   json.RawMessage `json:"details"`
}

// 🔍 Filter narrows a Query. Zero values mean "no filter". Limit truncates
// the result after sorting; zero means unlimited.
type Filter struct {
	RecordID  string
	Operation Operation
	Limit     int
}

// 📖 Log is an append-only, line-oriented store of audit entries. It owns
// its file independently of the document store and is safe for concurrent
// use. Queries always re-read from disk, so they reflect the latest on-disk
// state at call time.
type Log struct {
	path  string
	files fsio.FileStore
	mu    sync.Mutex
}

// 🏭 New creates an audit log writing to path.
func New(path string, files fsio.FileStore) *Log {
	return &Log{path: path, files: files}
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// 📝 Append writes one entry to the end of the log. The actor defaults to
// DefaultActor and the timestamp to now when unset. Fails only on
// underlying storage I/O (fsio.StorageError).
func (l *Log) Append(ctx context.Context, entry Entry) error {
	if entry.Actor == "" {
		entry.Actor = DefaultActor
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return errors.Errorf("encoding audit entry: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.files.AppendLine(ctx, l.path, line); err != nil {
		return errors.Errorf("appending audit entry: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("operation", string(entry.Operation)).
		Str("record_id", entry.RecordID).
		Str("actor", entry.Actor).
		Msg("audit entry appended")

	return nil
}

// 🔎 Query reads the whole log, applies the filter, and returns matching
// entries sorted by timestamp descending. The sort is stable: entries with
// identical timestamps keep their file (append) order relative to each
// other. A missing log file yields an empty result.
func (l *Log) Query(ctx context.Context, filter Filter) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	exists, err := l.files.FileExists(ctx, l.path)
	if err != nil {
		return nil, errors.Errorf("checking audit log: %w", err)
	}
	if !exists {
		return []Entry{}, nil
	}

	content, err := l.files.ReadFile(ctx, l.path)
	if err != nil {
		return nil, errors.Errorf("reading audit log: %w", err)
	}

	entries := []Entry{}
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, errors.Errorf("decoding audit entry: %w", err)
		}

		if filter.RecordID != "" && entry.RecordID != filter.RecordID {
			continue
		}
		if filter.Operation != "" && entry.Operation != filter.Operation {
			continue
		}

		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("scanning audit log: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if filter.Limit > 0 && len(entries) > filter.Limit {
		entries = entries[:filter.Limit]
	}

	return entries, nil
}

// 🧹 Clear truncates the log to empty. Irreversible; maintenance only.
func (l *Log) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.files.Truncate(ctx, l.path); err != nil {
		return errors.Errorf("clearing audit log: %w", err)
	}

	zerolog.Ctx(ctx).Warn().Str("path", l.path).Msg("audit log cleared")
	return nil
}
