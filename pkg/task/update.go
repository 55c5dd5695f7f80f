package task

import (
	"time"
)

// 🔑 Field identifies a task field that can be changed through Apply. The
// set is closed: unknown names are ignored rather than dispatched
// dynamically.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldStatus      Field = "status"
	FieldPriority    Field = "priority"
	FieldAssignee    Field = "assignee"
)

// Change records one field transition inside an accepted update.
type Change struct {
	Previous string `json:"previous"`
	New      string `json:"new"`
}

// ChangeSet maps field names to their transitions for one accepted update.
type ChangeSet map[string]Change

// UpdateResult describes an accepted update, for audit purposes. Changes is
// empty when every proposed value equaled the current one; Version and
// UpdatedAt are only meaningful when Changes is non-empty.
type UpdateResult struct {
	Changes   ChangeSet `json:"changes"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// setter applies a validated value to the task.
type setter struct {
	get func(*Task) string
	set func(*Task, string)
}

var setters = map[Field]setter{
	FieldTitle: {
		get: func(t *Task) string { return t.Title },
		set: func(t *Task, v string) { t.Title = v },
	},
	FieldDescription: {
		get: func(t *Task) string { return t.Description },
		set: func(t *Task, v string) { t.Description = v },
	},
	FieldStatus: {
		get: func(t *Task) string { return string(t.Status) },
		set: func(t *Task, v string) { t.Status = Status(v) },
	},
	FieldPriority: {
		get: func(t *Task) string { return string(t.Priority) },
		set: func(t *Task, v string) { t.Priority = Priority(v) },
	},
	FieldAssignee: {
		get: func(t *Task) string { return t.Assignee },
		set: func(t *Task, v string) { t.Assignee = v },
	},
}

// 🔄 Apply validates the proposed values, applies the ones that differ from
// the current ones, and returns the resulting change-set. Validation runs
// before any field is touched, so an invalid status or priority rejects the
// whole update. A change-set with at least one entry bumps the version by 1
// and advances updated_at; an empty one leaves the task exactly as it was.
func (t *Task) Apply(changes map[Field]string) (UpdateResult, error) {
	// Validate everything up front. No partial application.
	for field, value := range changes {
		switch field {
		case FieldStatus:
			if !Status(value).IsValid() {
				return UpdateResult{}, NewValidationError(FieldStatus, value, statusNames())
			}
		case FieldPriority:
			if !Priority(value).IsValid() {
				return UpdateResult{}, NewValidationError(FieldPriority, value, priorityNames())
			}
		}
	}

	collected := ChangeSet{}
	for field, value := range changes {
		s, ok := setters[field]
		if !ok {
			continue
		}
		previous := s.get(t)
		if previous == value {
			continue
		}
		s.set(t, value)
		collected[string(field)] = Change{Previous: previous, New: value}
	}

	if len(collected) == 0 {
		return UpdateResult{Changes: ChangeSet{}}, nil
	}

	t.Version++
	t.UpdatedAt = time.Now()

	return UpdateResult{
		Changes:   collected,
		Version:   t.Version,
		UpdatedAt: t.UpdatedAt,
	}, nil
}
