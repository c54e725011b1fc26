package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/veldt/tap/id"
	"github.com/veldt/tap/journal"
	"github.com/veldt/tap/pipeline"
)

// deliveryKind is the journal kind under which audit entries are stored.
const deliveryKind = "delivery"

// Audit returns a hook that persists one delivery record per completed
// core operation, keyed by the core output. It gives an auditable trail
// of which operations had their side effects dispatched.
func Audit(store journal.Store) pipeline.Hook {
	return pipeline.HookFunc("audit", func(ctx context.Context, d pipeline.Delivery) error {
		rec := &journal.Record{
			ID:        id.NewDeliveryID(),
			Kind:      deliveryKind,
			Key:       string(d.Output),
			Payload:   d.Payload,
			Codec:     "raw",
			CreatedAt: time.Now().UTC(),
		}
		if err := store.SaveRecord(ctx, rec); err != nil {
			return fmt.Errorf("notify: audit: %w", err)
		}
		return nil
	})
}
