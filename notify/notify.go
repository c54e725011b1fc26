// Package notify provides ready-made pipeline hooks: email and SMS
// delivery over an injected Messenger, a rate-limiting hook wrapper, and
// an audit hook persisting deliveries to a journal store.
//
// The concrete mail/SMS transport lives outside this package — callers
// inject anything satisfying Messenger.
package notify

import (
	"context"
	"fmt"

	"github.com/veldt/tap/pipeline"
)

// Messenger is the narrow delivery capability notify hooks consume.
type Messenger interface {
	Send(ctx context.Context, to, subject, body string) error
}

// MessengerFunc is an adapter to use a plain function as a Messenger.
type MessengerFunc func(ctx context.Context, to, subject, body string) error

// Send implements Messenger.
func (f MessengerFunc) Send(ctx context.Context, to, subject, body string) error {
	return f(ctx, to, subject, body)
}

// Email returns a hook that mails a completion notice to the given
// address after each successful core operation. The body reports sizes
// only: the output may be binary (msgpack-encoded records), so it is
// never interpolated into the message.
func Email(m Messenger, to string) pipeline.Hook {
	return pipeline.HookFunc("email", func(ctx context.Context, d pipeline.Delivery) error {
		body := fmt.Sprintf("record saved (%d byte output, %d byte payload)", len(d.Output), len(d.Payload))
		if err := m.Send(ctx, to, "record saved", body); err != nil {
			return fmt.Errorf("notify: email %s: %w", to, err)
		}
		return nil
	})
}

// SMS returns a hook that texts a completion notice to the given number
// after each successful core operation. Like Email, the body carries the
// output size, never the output bytes.
func SMS(m Messenger, to string) pipeline.Hook {
	return pipeline.HookFunc("sms", func(ctx context.Context, d pipeline.Delivery) error {
		body := fmt.Sprintf("record saved (%d bytes)", len(d.Output))
		if err := m.Send(ctx, to, "", body); err != nil {
			return fmt.Errorf("notify: sms %s: %w", to, err)
		}
		return nil
	})
}
