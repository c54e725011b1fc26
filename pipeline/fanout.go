package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/veldt/tap"
)

// Fanout delivers completed operations to a runtime-mutable set of hooks.
// Hooks are invoked sequentially, in registration order, on the caller's
// goroutine. Execute operates on a snapshot of the hook set taken at call
// start: hooks registered after that point never retroactively join an
// in-flight run, and unregistered hooks never run for subsequent calls.
//
// Fanout is the right strategy when the hook set changes after assembly;
// for a fixed set composed up front, see Chain.
type Fanout struct {
	mu     sync.RWMutex
	hooks  []Hook
	logger *slog.Logger
}

// Compile-time interface check.
var _ Executor = (*Fanout)(nil)

// FanoutOption configures a Fanout.
type FanoutOption func(*Fanout)

// WithLogger sets the structured logger used to report hook failures.
func WithLogger(l *slog.Logger) FanoutOption {
	return func(f *Fanout) { f.logger = l }
}

// NewFanout creates an empty fanout pipeline.
func NewFanout(opts ...FanoutOption) *Fanout {
	f := &Fanout{logger: slog.Default()}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Register appends a hook to the invocation sequence. Registration order
// is invocation order. Registering a second hook under an existing name
// replaces the prior hook in place, keeping its position.
func (f *Fanout) Register(h Hook) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, existing := range f.hooks {
		if existing.Name() == h.Name() {
			f.hooks[i] = h
			return
		}
	}
	f.hooks = append(f.hooks, h)
}

// Unregister removes the hook with the given name. Removal never affects
// an Execute call that already snapshotted the hook set.
func (f *Fanout) Unregister(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, h := range f.hooks {
		if h.Name() == name {
			f.hooks = append(f.hooks[:i], f.hooks[i+1:]...)
			return nil
		}
	}
	return tap.ErrHookNotFound
}

// Hooks returns the names of all registered hooks in invocation order.
func (f *Fanout) Hooks() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, len(f.hooks))
	for i, h := range f.hooks {
		names[i] = h.Name()
	}
	return names
}

// snapshot copies the current hook sequence so in-flight runs see a
// stable view while registration proceeds concurrently.
func (f *Fanout) snapshot() []Hook {
	f.mu.RLock()
	defer f.mu.RUnlock()

	hooks := make([]Hook, len(f.hooks))
	copy(hooks, f.hooks)
	return hooks
}

// Execute runs op. If op fails, no hooks fire and the error is returned
// with a CoreFailed result. On success, every hook in the call-start
// snapshot runs in order; hook failures are logged, collected into
// Diagnostics, and never change the core result.
func (f *Fanout) Execute(ctx context.Context, op Op, payload []byte) (*Result, error) {
	// Snapshot before running op: a hook registered while the core
	// operation is in flight must not join this run.
	hooks := f.snapshot()

	res := &Result{State: StateRunning}

	output, err := op(ctx, payload)
	if err != nil {
		res.State = StateCoreFailed
		return res, err
	}

	res.State = StateCompleted
	res.Output = output

	d := Delivery{Payload: payload, Output: output}
	for _, h := range hooks {
		if hookErr := runHook(ctx, h, d); hookErr != nil {
			f.logger.Warn("hook failed",
				slog.String("hook", h.Name()),
				slog.String("error", hookErr.Error()),
			)
			res.Diagnostics = append(res.Diagnostics, HookError{Hook: h.Name(), Err: hookErr})
		}
	}
	return res, nil
}
