// Package pipeline runs a core operation and fans its result out to
// registered post-operation hooks. The core operation's outcome is
// independent of hook failures: hooks only fire after confirmed core
// success, hook errors are collected as diagnostics, and a hook that
// fails (or panics) never prevents later hooks from running.
//
// Two interchangeable composition strategies satisfy the same Executor
// contract: Chain composes hooks at assembly time, Fanout keeps a
// runtime-mutable registry with snapshot isolation for in-flight runs.
package pipeline

import (
	"context"
	"fmt"
)

// Op is the core operation a pipeline executes. It must be free of the
// side effects the hooks provide — those fire only after Op succeeds.
type Op func(ctx context.Context, payload []byte) ([]byte, error)

// Delivery carries the completed operation's data to a hook: the original
// payload and the core operation's output.
type Delivery struct {
	Payload []byte
	Output  []byte
}

// Hook is a post-operation side effect. Name identifies the hook for
// unregistration and diagnostics. A hook error is non-fatal: it is
// collected and reported, never escalated into a core failure.
type Hook interface {
	Name() string
	OnCompleted(ctx context.Context, d Delivery) error
}

// HookFunc adapts a named function to the Hook interface.
func HookFunc(name string, fn func(ctx context.Context, d Delivery) error) Hook {
	return &hookFunc{name: name, fn: fn}
}

type hookFunc struct {
	name string
	fn   func(ctx context.Context, d Delivery) error
}

func (h *hookFunc) Name() string { return h.name }

func (h *hookFunc) OnCompleted(ctx context.Context, d Delivery) error {
	return h.fn(ctx, d)
}

// State describes the outcome of one Execute call.
type State string

const (
	StateIdle       State = "idle"
	StateRunning    State = "running"
	StateCompleted  State = "completed"
	StateCoreFailed State = "core_failed"
)

// HookError records one hook failure collected during an Execute call.
type HookError struct {
	Hook string
	Err  error
}

// Error implements the error interface.
func (e HookError) Error() string {
	return fmt.Sprintf("pipeline: hook %s: %v", e.Hook, e.Err)
}

// Unwrap returns the hook's underlying error.
func (e HookError) Unwrap() error { return e.Err }

// Result is the outcome of one Execute call. On core success, Output holds
// the operation's output and Diagnostics any hook failures. On core
// failure, State is StateCoreFailed, no hooks ran, and the returned error
// carries the cause.
type Result struct {
	Output      []byte
	State       State
	Diagnostics []HookError
}

// Executor runs a core operation and delivers its result to hooks.
// Chain and Fanout both satisfy this contract with identical semantics;
// they differ only in how their hook set is assembled.
type Executor interface {
	Execute(ctx context.Context, op Op, payload []byte) (*Result, error)
}

// runHook invokes one hook, converting panics into errors so a misbehaving
// hook cannot take down the pipeline or skip the hooks after it.
func runHook(ctx context.Context, h Hook, d Delivery) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in hook %s: %v", h.Name(), r)
		}
	}()
	return h.OnCompleted(ctx, d)
}
