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

// Command taskvault-demo walks through every store operation in sequence:
// creation, listing, versioned updates, filtering, audit history, an
// integrity check of the document file, and a concurrent-update segment
// exercising the store lock.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/taskvault/taskvault/pkg/audit"
	"github.com/taskvault/taskvault/pkg/fsio"
	"github.com/taskvault/taskvault/pkg/render"
	"github.com/taskvault/taskvault/pkg/store"
	"github.com/taskvault/taskvault/pkg/task"
	"golang.org/x/sync/errgroup"
)

var (
	dataDir = flag.String("data-dir", "", "Directory for demo files (default: a fresh temp dir)")
	debug   = flag.Bool("debug", false, "Enable debug logging")
)

func section(n int, title string) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Printf("%d. %s\n", n, title)
	fmt.Println(strings.Repeat("-", 70))
}

func main() {
	flag.Parse()

	logLevel := zerolog.WarnLevel
	if *debug {
		logLevel = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stderr).Level(logLevel).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	dir := *dataDir
	if dir == "" {
		var err error
		dir, err = os.MkdirTemp("", "taskvault-demo-")
		if err != nil {
			logger.Fatal().Err(err).Msg("creating demo directory")
		}
	}

	files := fsio.NewOS()
	auditLog := audit.New(filepath.Join(dir, "demo_audit.log"), files)
	st := store.New(filepath.Join(dir, "demo_tasks.json"), auditLog, files)
	if err := st.Open(ctx); err != nil {
		logger.Fatal().Err(err).Msg("opening store")
	}

	out := render.New(os.Stdout)
	pterm.DefaultHeader.Println("taskvault demonstration")
	fmt.Printf("Data directory: %s\n", dir)

	// 1. Create tasks
	section(1, "CREATING TASKS")

	auth := mustTask("Implement authentication", "Login with JWT sessions", "joao",
		task.WithPriority(task.PriorityHigh))
	cicd := mustTask("Configure CI/CD", "Continuous integration pipeline", "maria",
		task.WithPriority(task.PriorityCritical))
	docs := mustTask("Write documentation", "API reference and usage guides", "carlos")

	for _, t := range []*task.Task{auth, cicd, docs} {
		if _, err := st.Create(ctx, t, "manager"); err != nil {
			logger.Fatal().Err(err).Msg("creating task")
		}
		pterm.Success.Printfln("Created: %s (v%d)", t.Title, t.Version)
	}

	// 2. List all tasks
	section(2, "LISTING ALL TASKS")

	all, err := st.List(ctx, store.ListFilter{})
	if err != nil {
		logger.Fatal().Err(err).Msg("listing tasks")
	}
	out.TaskTable(all)

	// 3. Versioned updates
	section(3, "UPDATING TASKS (VERSION CONTROL)")

	fmt.Printf("\nTask %q current version: v%d\n", auth.Title, auth.Version)
	mustUpdate(ctx, st, auth.ID, "joao", map[task.Field]string{
		task.FieldStatus: string(task.StatusInProgress),
	})
	after, err := st.Get(ctx, auth.ID)
	if err != nil {
		logger.Fatal().Err(err).Msg("getting task")
	}
	fmt.Printf("After update: v%d - status %s\n", after.Version, after.Status)

	mustUpdate(ctx, st, auth.ID, "joao", map[task.Field]string{
		task.FieldPriority: string(task.PriorityCritical),
	})
	after, err = st.Get(ctx, auth.ID)
	if err != nil {
		logger.Fatal().Err(err).Msg("getting task")
	}
	fmt.Printf("After second update: v%d - priority %s\n", after.Version, after.Priority)

	// 4. Filtered lists
	section(4, "FILTERING TASKS")

	fmt.Println("\nPENDING tasks:")
	pending, err := st.List(ctx, store.ListFilter{Status: task.StatusPending})
	if err != nil {
		logger.Fatal().Err(err).Msg("listing tasks")
	}
	for _, t := range pending {
		fmt.Printf("  • %s - %s\n", t.Title, t.Assignee)
	}

	fmt.Println("\nCRITICAL priority tasks:")
	critical, err := st.List(ctx, store.ListFilter{Priority: task.PriorityCritical})
	if err != nil {
		logger.Fatal().Err(err).Msg("listing tasks")
	}
	for _, t := range critical {
		fmt.Printf("  • %s - %s\n", t.Title, t.Status)
	}

	// 5. Audit history
	section(5, "AUDIT HISTORY (TRACEABILITY)")

	history, err := st.History(ctx, auth.ID)
	if err != nil {
		logger.Fatal().Err(err).Msg("querying history")
	}
	fmt.Printf("\nOperations recorded for %q: %d\n", auth.Title, len(history))
	out.History(auth.ID, history)

	// 6. Data integrity
	section(6, "DATA INTEGRITY")

	fresh, err := st.Get(ctx, auth.ID)
	if err != nil {
		logger.Fatal().Err(err).Msg("integrity check")
	}
	pterm.Success.Printfln("Document checksum verified on read (task %s at v%d)", fresh.ShortID(), fresh.Version)

	// 7. Concurrent updates through the store lock
	section(7, "CONCURRENT UPDATES")

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < 5; i++ {
		actor := fmt.Sprintf("worker-%d", i)
		title := fmt.Sprintf("Write documentation (pass %d)", i)
		g.Go(func() error {
			_, err := st.Update(gctx, docs.ID, actor, map[task.Field]string{
				task.FieldTitle: title,
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("concurrent updates")
	}

	final, err := st.Get(ctx, docs.ID)
	if err != nil {
		logger.Fatal().Err(err).Msg("getting task")
	}
	fmt.Printf("5 concurrent updates applied, final version: v%d\n", final.Version)

	// 8. Complete a task and summarize
	section(8, "FINAL SUMMARY")

	mustUpdate(ctx, st, docs.ID, "carlos", map[task.Field]string{
		task.FieldStatus: string(task.StatusDone),
	})

	all, err = st.List(ctx, store.ListFilter{})
	if err != nil {
		logger.Fatal().Err(err).Msg("listing tasks")
	}

	byStatus := map[task.Status]int{}
	for _, t := range all {
		byStatus[t.Status]++
	}

	fmt.Printf("\nTotal tasks: %d\n\nDistribution by status:\n", len(all))
	for _, s := range task.Statuses() {
		if byStatus[s] > 0 {
			fmt.Printf("  %s: %d\n", s, byStatus[s])
		}
	}

	pterm.Success.Println("Demonstration complete")
}

func mustTask(title, description, assignee string, opts ...task.Option) *task.Task {
	t, err := task.New(title, description, assignee, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

func mustUpdate(ctx context.Context, st *store.Store, id, actor string, changes map[task.Field]string) {
	if _, err := st.Update(ctx, id, actor, changes); err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("updating task")
	}
}
