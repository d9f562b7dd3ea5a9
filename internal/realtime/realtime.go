// Package realtime delivers row-change notifications scoped to a resource
// table and an owner id. Consumers only learn that something changed; no row
// payload is carried. The transport (postgres NOTIFY vs in-process bus) hides
// behind Subscriber.
package realtime

import (
	"context"

	"github.com/google/uuid"
)

// Change identifies a mutated resource scoped to its owning user
type Change struct {
	Table   string
	OwnerID uuid.UUID
}

// Subscriber registers interest in changes to one owner's rows of one table.
// The returned cancel func releases the subscription.
type Subscriber interface {
	Subscribe(ctx context.Context, table string, ownerID uuid.UUID) (<-chan Change, func(), error)
}

// Publisher is the sending side, used by the in-process bus and tests
type Publisher interface {
	Publish(change Change)
}
