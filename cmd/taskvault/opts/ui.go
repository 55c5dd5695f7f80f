package opts

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about store operations
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎨 TaskChangeType represents the type of change made to a task
type TaskChangeType int

const (
	TaskCreated TaskChangeType = iota
	TaskUpdated
	TaskDeleted
	TaskUnchanged
	TaskError
)

// 🖼️ TaskChange represents a change to a task in the store
type TaskChange struct {
	Type        TaskChangeType
	ID          string
	Description string
	Error       error
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogTaskChange logs a task change with appropriate prefix and formatting
func (u *UserLogger) LogTaskChange(change TaskChange) {
	var prefix, action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case TaskCreated:
		prefix = "✨"
		action = "Created"
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: prefix})
	case TaskUpdated:
		prefix = "🔄"
		action = "Updated"
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: prefix})
	case TaskDeleted:
		prefix = "🗑️"
		action = "Deleted"
		printer = pterm.Warning.WithPrefix(pterm.Prefix{Text: prefix})
	case TaskUnchanged:
		prefix = "⏭️"
		action = "Unchanged"
		printer = pterm.Debug.WithPrefix(pterm.Prefix{Text: prefix})
	case TaskError:
		prefix = "❌"
		action = "Error"
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: prefix})
	}

	msg := fmt.Sprintf("%s task %s", action, change.ID)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	if change.Error != nil {
		printer.Println(msg)
		pterm.Error.Println(change.Error)
		u.log.Error().Err(change.Error).Msg(msg) // Also log to zerolog for debugging
	} else {
		printer.Println(msg)
		u.log.Info().Msg(msg) // Also log to zerolog for debugging
	}
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
	} else {
		if err != nil {
			pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
			pterm.Error.Println(err)
			u.log.Error().Err(err).Msg(description)
		} else {
			pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
			u.log.Warn().Msg(description)
		}
	}
}

// 💥 LogIntegrityFailure reports a possible data-loss event. Integrity
// failures must never be reported quietly.
func (u *UserLogger) LogIntegrityFailure(err error) {
	pterm.Error.WithPrefix(pterm.Prefix{Text: "💥"}).Println("DATA INTEGRITY FAILURE — the task document may be corrupted")
	pterm.Error.Println(err)
	u.log.Error().Err(err).Msg("integrity failure")
}
