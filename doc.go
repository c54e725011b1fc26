// Package tap provides a composable post-operation notification core for Go.
// It lets callers run a fixed core operation — typically persisting an
// imported record — and attach an open-ended, dynamically configurable set
// of side-effect hooks that fire only after the operation succeeds.
//
// Tap is designed as a library, not a service. Import it, configure a
// journal store and one or more sources, and register hooks as ordinary
// Go values.
//
// # Quick Start
//
//	eng, err := engine.New(
//	    engine.WithStore(memory.New()),
//	    engine.WithSource("file", file.New("/var/log/feeds")),
//	    engine.WithHook(notify.Email(mailer, "ops@example.com")),
//	)
//
// # Architecture
//
// Tap follows a composable adapter pattern where each concern defines its
// own narrow interface: source.Reader normalizes heterogeneous backends
// into a single read capability, network.Registry dispatches a platform
// kind to its profile service, profile.Load fixes the import workflow in
// one place, and pipeline.Executor runs the core operation before fanning
// its result out to hooks.
//
// Hook failures are collected as diagnostics and never escalate into a
// failure of the core operation. A failed core operation never fires hooks.
//
// All entity IDs use TypeID — type-prefixed, K-sortable, UUIDv7-based,
// compile-time safe identifiers.
package tap
