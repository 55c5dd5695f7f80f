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

package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/taskvault/taskvault/pkg/audit"
	"github.com/taskvault/taskvault/pkg/fsio"
	"github.com/taskvault/taskvault/pkg/task"
	"gitlab.com/tozd/go/errors"
)

// 🗃️ Store owns the on-disk task document and the single exclusive lock
// guarding it. Every operation, reads included, runs its whole
// load→mutate→save sequence under the lock, so no operation observes a
// torn document and no update is lost. Audit entries are appended after
// the lock is released, before returning: they lag or coincide with the
// document state they describe, never precede it. A crash between save and
// append can leave a persisted but unaudited mutation; that gap is
// accepted and not corrected.
type Store struct {
	path  string
	files fsio.FileStore
	log   *audit.Log
	mu    sync.Mutex
}

// 🔍 ListFilter narrows List results. All supplied filters must match (AND
// semantics). Assignee accepts doublestar glob patterns; a plain string
// matches exactly.
type ListFilter struct {
	Status   task.Status
	Priority task.Priority
	Assignee string
}

// 🏭 New creates a store persisting to path and auditing to log.
func New(path string, log *audit.Log, files fsio.FileStore) *Store {
	return &Store{path: path, files: files, log: log}
}

// Path returns the document file location.
func (s *Store) Path() string {
	return s.path
}

// AuditLog returns the audit log this store appends to.
func (s *Store) AuditLog() *audit.Log {
	return s.log
}

// Open initializes the document file with an empty, checksummed document if
// it does not exist yet.
func (s *Store) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.files.FileExists(ctx, s.path)
	if err != nil {
		return errors.Errorf("checking document file: %w", err)
	}
	if exists {
		return nil
	}
	return s.saveLocked(ctx, emptyDocument())
}

// loadLocked reads and integrity-checks the document. Caller must hold the
// lock. A missing file loads as an empty document.
func (s *Store) loadLocked(ctx context.Context) (*document, error) {
	exists, err := s.files.FileExists(ctx, s.path)
	if err != nil {
		return nil, errors.Errorf("checking document file: %w", err)
	}
	if !exists {
		return emptyDocument(), nil
	}

	data, err := s.files.ReadFile(ctx, s.path)
	if err != nil {
		return nil, errors.Errorf("reading document: %w", err)
	}

	if err := verifyRawDocument(s.path, data); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Errorf("decoding document: %w", err)
	}
	if doc.Records == nil {
		doc.Records = []*task.Task{}
	}

	return &doc, nil
}

// saveLocked embeds a fresh checksum and writes the document atomically.
// Caller must hold the lock.
func (s *Store) saveLocked(ctx context.Context, doc *document) error {
	checksum, err := computeChecksum(doc)
	if err != nil {
		return err
	}
	doc.Checksum = checksum

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Errorf("encoding document: %w", err)
	}

	if err := s.files.WriteFileAtomic(ctx, s.path, data); err != nil {
		return errors.Errorf("writing document: %w", err)
	}

	return nil
}

// ➕ Create appends t to the document and logs a CREATE entry with the full
// record snapshot. Fails with DuplicateIDError if the id already exists,
// leaving the document unchanged.
func (s *Store) Create(ctx context.Context, t *task.Task, actor string) (*task.Task, error) {
	s.mu.Lock()

	doc, err := s.loadLocked(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	for _, existing := range doc.Records {
		if existing.ID == t.ID {
			s.mu.Unlock()
			return nil, &DuplicateIDError{ID: t.ID}
		}
	}

	doc.Records = append(doc.Records, t)
	if err := s.saveLocked(ctx, doc); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	zerolog.Ctx(ctx).Info().Str("id", t.ID).Str("title", t.Title).Msg("task created")

	if err := s.appendAudit(ctx, audit.OpCreate, t.ID, actor, snapshotDetails(t)); err != nil {
		return nil, err
	}

	return t, nil
}

// 🔎 Get returns the record with the given id, or ErrNotFound. Reads are
// not audited.
func (s *Store) Get(ctx context.Context, id string) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}

	for _, t := range doc.Records {
		if t.ID == id {
			return t, nil
		}
	}

	return nil, errors.Errorf("task %s: %w", id, ErrNotFound)
}

// 📋 List returns all records matching every supplied filter, in document
// order.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}

	results := []*task.Task{}
	for _, t := range doc.Records {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		if filter.Assignee != "" {
			matched, err := doublestar.Match(filter.Assignee, t.Assignee)
			if err != nil {
				return nil, errors.Errorf("matching assignee pattern %q: %w", filter.Assignee, err)
			}
			if !matched {
				continue
			}
		}
		results = append(results, t)
	}

	return results, nil
}

// 🔄 Update applies the proposed field changes to the record with the given
// id. A non-empty change-set is persisted and logged as an UPDATE entry; an
// empty one (every proposed value equals the current one) performs no write
// and no audit entry. Returns ErrNotFound if the id does not exist.
func (s *Store) Update(ctx context.Context, id, actor string, changes map[task.Field]string) (*task.Task, error) {
	s.mu.Lock()

	doc, err := s.loadLocked(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	var target *task.Task
	for _, t := range doc.Records {
		if t.ID == id {
			target = t
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return nil, errors.Errorf("task %s: %w", id, ErrNotFound)
	}

	result, err := target.Apply(changes)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	if len(result.Changes) == 0 {
		s.mu.Unlock()
		zerolog.Ctx(ctx).Debug().Str("id", id).Msg("update changed nothing")
		return target, nil
	}

	if err := s.saveLocked(ctx, doc); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	zerolog.Ctx(ctx).Info().Str("id", id).Int("version", target.Version).Msg("task updated")

	details, merr := json.Marshal(result)
	if merr != nil {
		return nil, errors.Errorf("encoding update details: %w", merr)
	}
	if err := s.appendAudit(ctx, audit.OpUpdate, id, actor, details); err != nil {
		return nil, err
	}

	return target, nil
}

// 🗑️ Delete removes the record with the given id and logs a DELETE entry
// carrying its last-known snapshot. Returns false, with no write and no
// audit entry, if the id does not exist.
func (s *Store) Delete(ctx context.Context, id, actor string) (bool, error) {
	s.mu.Lock()

	doc, err := s.loadLocked(ctx)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}

	index := -1
	for i, t := range doc.Records {
		if t.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return false, nil
	}

	removed := doc.Records[index]
	doc.Records = append(doc.Records[:index], doc.Records[index+1:]...)

	if err := s.saveLocked(ctx, doc); err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.mu.Unlock()

	zerolog.Ctx(ctx).Info().Str("id", id).Msg("task deleted")

	if err := s.appendAudit(ctx, audit.OpDelete, id, actor, snapshotDetails(removed)); err != nil {
		return false, err
	}

	return true, nil
}

// 📜 History returns every audit entry referencing id, newest first.
func (s *Store) History(ctx context.Context, id string) ([]audit.Entry, error) {
	return s.log.Query(ctx, audit.Filter{RecordID: id})
}

func (s *Store) appendAudit(ctx context.Context, op audit.Operation, id, actor string, details json.RawMessage) error {
	if err := s.log.Append(ctx, audit.Entry{
		Operation: op,
		RecordID:  id,
		Actor:     actor,
		Details:   details,
	}); err != nil {
		return errors.Errorf("auditing %s: %w", op, err)
	}
	return nil
}

// snapshotDetails wraps a full record snapshot for CREATE/DELETE entries.
func snapshotDetails(t *task.Task) json.RawMessage {
	data, err := json.Marshal(map[string]*task.Task{"task": t})
	if err != nil {
		// Task marshaling cannot fail: all fields are plain values.
		panic(err)
	}
	return data
}
