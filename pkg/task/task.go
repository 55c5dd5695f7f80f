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

package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// 📊 Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
	StatusCancelled  Status = "CANCELLED"
)

// Statuses lists every recognized status, in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusDone, StatusCancelled}
}

// IsValid reports whether s is a recognized status value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// 🎯 Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Priorities lists every recognized priority, lowest first.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// IsValid reports whether p is a recognized priority value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// 📋 Task is one tracked task record. Version starts at 1 and increments by
// exactly 1 on every update that changes at least one field; an update whose
// proposed values all equal the current ones leaves the record untouched.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	Assignee    string   `json:"assignee"`
	Version     int      `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// 🔧 Option customizes task construction.
type Option func(*Task)

// WithID uses id instead of a generated one.
func WithID(id string) Option {
	return func(t *Task) { t.ID = id }
}

// WithStatus overrides the default PENDING status.
func WithStatus(s Status) Option {
	return func(t *Task) { t.Status = s }
}

// WithPriority overrides the default MEDIUM priority.
func WithPriority(p Priority) Option {
	return func(t *Task) { t.Priority = p }
}

// 🏭 New constructs a task with version 1 and created_at == updated_at.
// Status and priority are validated after options are applied; an
// unrecognized value fails with ValidationError.
func New(title, description, assignee string, opts ...Option) (*Task, error) {
	now := time.Now()
	t := &Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      StatusPending,
		Priority:    PriorityMedium,
		Assignee:    assignee,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, opt := range opts {
		opt(t)
	}

	if !t.Status.IsValid() {
		return nil, NewValidationError(FieldStatus, string(t.Status), statusNames())
	}
	if !t.Priority.IsValid() {
		return nil, NewValidationError(FieldPriority, string(t.Priority), priorityNames())
	}

	return t, nil
}

func statusNames() []string {
	names := make([]string, 0, len(Statuses()))
	for _, s := range Statuses() {
		names = append(names, string(s))
	}
	return names
}

func priorityNames() []string {
	names := make([]string, 0, len(Priorities()))
	for _, p := range Priorities() {
		names = append(names, string(p))
	}
	return names
}

// ShortID returns the first 8 characters of the id for display.
func (t *Task) ShortID() string {
	if len(t.ID) <= 8 {
		return t.ID
	}
	return t.ID[:8]
}

func (t *Task) String() string {
	return fmt.Sprintf("Task(id=%s, title=%q, status=%s, priority=%s, assignee=%q, version=%d)",
		t.ShortID(), t.Title, t.Status, t.Priority, t.Assignee, t.Version)
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
