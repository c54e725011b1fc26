package pipeline

import (
	"context"
	"log/slog"
)

// Chain delivers completed operations through assembly-time decoration:
// each Use call returns a new chain in which the added hook wraps the
// combined effect of the hooks before it. The original chain is left
// untouched, so a chain value held by a caller is immutable.
//
// Chain and Fanout implement the same Executor contract — hooks run in
// the order they were added, and a hook failure is collected without
// interrupting later hooks. Prefer Chain when the hook set is fixed at
// assembly time; prefer Fanout when it changes at runtime.
type Chain struct {
	hooks  []Hook
	logger *slog.Logger
}

// Compile-time interface check.
var _ Executor = (*Chain)(nil)

// NewChain creates a chain delivering to the given hooks in order.
func NewChain(hooks ...Hook) *Chain {
	return &Chain{hooks: hooks, logger: slog.Default()}
}

// WithChainLogger returns a copy of the chain using the given logger.
func (c *Chain) WithChainLogger(l *slog.Logger) *Chain {
	return &Chain{hooks: c.hooks, logger: l}
}

// Use returns a new chain in which h wraps the current chain's combined
// effect: the existing hooks run first, then h.
func (c *Chain) Use(h Hook) *Chain {
	hooks := make([]Hook, 0, len(c.hooks)+1)
	hooks = append(hooks, c.hooks...)
	hooks = append(hooks, h)
	return &Chain{hooks: hooks, logger: c.logger}
}

// Hooks returns the names of the chained hooks in invocation order.
func (c *Chain) Hooks() []string {
	names := make([]string, len(c.hooks))
	for i, h := range c.hooks {
		names[i] = h.Name()
	}
	return names
}

// Execute runs op. If op fails, no hooks fire and the error is returned
// with a CoreFailed result. On success the decorated delivery runs: each
// layer invokes the combined effect of the layers added before it and
// then its own hook, so hooks fire in the order they were added.
func (c *Chain) Execute(ctx context.Context, op Op, payload []byte) (*Result, error) {
	res := &Result{State: StateRunning}

	output, err := op(ctx, payload)
	if err != nil {
		res.State = StateCoreFailed
		return res, err
	}

	res.State = StateCompleted
	res.Output = output

	d := Delivery{Payload: payload, Output: output}

	deliver := func(context.Context) {}
	for _, h := range c.hooks {
		inner := deliver
		deliver = func(ctx context.Context) {
			inner(ctx)
			if hookErr := runHook(ctx, h, d); hookErr != nil {
				c.logger.Warn("hook failed",
					slog.String("hook", h.Name()),
					slog.String("error", hookErr.Error()),
				)
				res.Diagnostics = append(res.Diagnostics, HookError{Hook: h.Name(), Err: hookErr})
			}
		}
	}
	deliver(ctx)

	return res, nil
}
