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

package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/taskvault/taskvault/pkg/audit"
	"github.com/taskvault/taskvault/pkg/task"
)

// 🎨 Display configuration
const (
	idWidth       = 10 // truncated id column
	titleWidth    = 30 // task title column
	statusWidth   = 13 // status column
	priorityWidth = 10 // priority column
	assigneeWidth = 20 // assignee column
	versionWidth  = 8  // version column
	ruleWidth     = 60 // separator rule for detail view
)

// 🖨️ Renderer formats tasks and audit history for console output.
type Renderer struct {
	out io.Writer
}

// 🏭 New creates a renderer writing to out.
func New(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func statusColor(s task.Status) *color.Color {
	switch s {
	case task.StatusPending:
		return color.New(color.FgYellow)
	case task.StatusInProgress:
		return color.New(color.FgBlue)
	case task.StatusDone:
		return color.New(color.FgGreen)
	case task.StatusCancelled:
		return color.New(color.Faint)
	default:
		return color.New(color.Reset)
	}
}

func priorityColor(p task.Priority) *color.Color {
	switch p {
	case task.PriorityCritical:
		return color.New(color.FgRed, color.Bold)
	case task.PriorityHigh:
		return color.New(color.FgRed)
	case task.PriorityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// 📋 TaskTable prints tasks as a fixed-width table with a total count.
func (r *Renderer) TaskTable(tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(r.out, "No tasks found.")
		return
	}

	fmt.Fprintf(r.out, "\n%-*s %-*s %-*s %-*s %-*s %-*s\n",
		idWidth, "ID",
		titleWidth, "Title",
		statusWidth, "Status",
		priorityWidth, "Priority",
		assigneeWidth, "Assignee",
		versionWidth, "Version")
	fmt.Fprintln(r.out, strings.Repeat("-", idWidth+titleWidth+statusWidth+priorityWidth+assigneeWidth+versionWidth+5))

	for _, t := range tasks {
		fmt.Fprintf(r.out, "%-*s %-*s %s %s %-*s v%-*d\n",
			idWidth, t.ShortID(),
			titleWidth, truncate(t.Title, titleWidth-2),
			statusColor(t.Status).Sprintf("%-*s", statusWidth, t.Status),
			priorityColor(t.Priority).Sprintf("%-*s", priorityWidth, t.Priority),
			assigneeWidth, truncate(t.Assignee, assigneeWidth-2),
			versionWidth-1, t.Version)
	}

	fmt.Fprintf(r.out, "\nTotal: %d task(s)\n", len(tasks))
}

// 🔎 TaskDetail prints the full record between separator rules.
func (r *Renderer) TaskDetail(t *task.Task) {
	rule := strings.Repeat("=", ruleWidth)

	fmt.Fprintf(r.out, "\n%s\n", rule)
	fmt.Fprintf(r.out, "ID: %s\n", t.ID)
	fmt.Fprintf(r.out, "Title: %s\n", t.Title)
	fmt.Fprintf(r.out, "Description: %s\n", t.Description)
	fmt.Fprintf(r.out, "Status: %s\n", statusColor(t.Status).Sprint(t.Status))
	fmt.Fprintf(r.out, "Priority: %s\n", priorityColor(t.Priority).Sprint(t.Priority))
	fmt.Fprintf(r.out, "Assignee: %s\n", t.Assignee)
	fmt.Fprintf(r.out, "Version: %d\n", t.Version)
	fmt.Fprintf(r.out, "Created at: %s\n", t.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(r.out, "Updated at: %s\n", t.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(r.out, "%s\n\n", rule)
}

// updateDetails mirrors the UPDATE audit payload for display.
type updateDetails struct {
	Changes map[string]task.Change `json:"changes"`
	Version int                    `json:"version"`
}

// 📜 History prints audit entries newest first, with per-field transitions
// for UPDATE entries.
func (r *Renderer) History(id string, entries []audit.Entry) {
	if len(entries) == 0 {
		fmt.Fprintf(r.out, "No history found for task %s.\n", id)
		return
	}

	rule := strings.Repeat("-", 80)
	fmt.Fprintf(r.out, "\nHistory for task %s:\n%s\n", id, rule)

	for _, entry := range entries {
		fmt.Fprintf(r.out, "\n[%s] %s by %s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			color.New(color.Bold).Sprint(entry.Operation),
			entry.Actor)

		if entry.Operation != audit.OpUpdate || len(entry.Details) == 0 {
			continue
		}

		var details updateDetails
		if err := json.Unmarshal(entry.Details, &details); err != nil {
			continue
		}
		for field, change := range details.Changes {
			fmt.Fprintf(r.out, "  %s: %s → %s\n", field, change.Previous, change.New)
		}
		if details.Version > 0 {
			fmt.Fprintf(r.out, "  version: v%d\n", details.Version)
		}
	}

	fmt.Fprintf(r.out, "%s\n", rule)
}
