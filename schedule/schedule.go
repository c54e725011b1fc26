// Package schedule runs recurring imports on cron expressions. Entries
// are named so they can be removed at runtime; the actual import work is
// delegated through the Importer interface, which *engine.Engine
// satisfies.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	cronlib "github.com/robfig/cron/v3"

	"github.com/veldt/tap"
	"github.com/veldt/tap/journal"
	"github.com/veldt/tap/network"
	"github.com/veldt/tap/pipeline"
)

// Importer is the slice of the engine the scheduler needs.
type Importer interface {
	Import(ctx context.Context, kind network.Kind, locator string) (*journal.Record, *pipeline.Result, error)
}

// cronParser supports standard 5-field cron and descriptors like "@every 30s".
var cronParser = cronlib.NewParser(
	cronlib.Minute | cronlib.Hour | cronlib.Dom | cronlib.Month | cronlib.Dow | cronlib.Descriptor,
)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the scheduler's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// Scheduler fires named import entries on their cron schedules.
// Safe for concurrent use.
type Scheduler struct {
	importer Importer
	logger   *slog.Logger
	cron     *cronlib.Cron

	mu      sync.Mutex
	entries map[string]cronlib.EntryID
}

// New creates a Scheduler delivering work to the given importer.
func New(imp Importer, opts ...Option) *Scheduler {
	s := &Scheduler{
		importer: imp,
		logger:   slog.Default(),
		entries:  make(map[string]cronlib.EntryID),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cron = cronlib.New(cronlib.WithParser(cronParser))
	return s
}

// AddImport schedules a recurring Import of locator on kind. The name
// must be unique; re-adding an existing name fails with
// tap.ErrDuplicateEntry rather than silently replacing the schedule.
func (s *Scheduler) AddImport(name, expr string, kind network.Kind, locator string) error {
	return s.AddFunc(name, expr, func(ctx context.Context) {
		if _, _, err := s.importer.Import(ctx, kind, locator); err != nil {
			s.logger.Error("scheduled import failed",
				"entry", name,
				"kind", kind,
				"locator", locator,
				"error", err,
			)
		}
	})
}

// AddFunc schedules an arbitrary function under a unique name.
func (s *Scheduler) AddFunc(name, expr string, fn func(ctx context.Context)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[name]; ok {
		return fmt.Errorf("schedule: add %q: %w", name, tap.ErrDuplicateEntry)
	}

	entryID, err := s.cron.AddFunc(expr, func() {
		fn(context.Background())
	})
	if err != nil {
		return fmt.Errorf("schedule: parse %q for entry %q: %w", expr, name, err)
	}
	s.entries[name] = entryID
	s.logger.Info("schedule entry added", "entry", name, "expr", expr)
	return nil
}

// Remove deletes a named entry. The entry stops firing immediately even
// while the scheduler is running.
func (s *Scheduler) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("schedule: remove %q: %w", name, tap.ErrEntryNotFound)
	}
	s.cron.Remove(entryID)
	delete(s.entries, name)
	s.logger.Info("schedule entry removed", "entry", name)
	return nil
}

// Entries returns the names of all registered entries.
func (s *Scheduler) Entries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	return names
}

// Start begins firing entries. Entries may still be added or removed
// after Start.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop halts firing and waits for in-flight entries to finish, or for
// ctx to expire, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
