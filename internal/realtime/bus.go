package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Bus is an in-process Subscriber/Publisher. The server publishes onto it from
// the postgres listener; tests publish directly.
type Bus struct {
	mu   sync.Mutex
	subs map[subKey]map[int]chan Change
	next int
}

type subKey struct {
	table   string
	ownerID uuid.UUID
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{subs: make(map[subKey]map[int]chan Change)}
}

// Subscribe registers for changes to one owner's rows in table. A uuid.Nil
// ownerID is a wildcard that receives every change for the table.
func (b *Bus) Subscribe(ctx context.Context, table string, ownerID uuid.UUID) (<-chan Change, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := subKey{table: table, ownerID: ownerID}
	if b.subs[key] == nil {
		b.subs[key] = make(map[int]chan Change)
	}

	id := b.next
	b.next++
	ch := make(chan Change, 8)
	b.subs[key][id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if set, ok := b.subs[key]; ok {
			if c, ok := set[id]; ok {
				delete(set, id)
				close(c)
			}
			if len(set) == 0 {
				delete(b.subs, key)
			}
		}
	}

	// Drop the subscription when the caller's context ends
	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch, cancel, nil
}

// Publish fans the change out to every matching subscriber. Slow consumers are
// skipped rather than blocked on: a dropped notification only delays the next
// recount, it never loses data.
func (b *Bus) Publish(change Change) {
	b.mu.Lock()
	defer b.mu.Unlock()

	keys := []subKey{
		{table: change.Table, ownerID: change.OwnerID},
		{table: change.Table, ownerID: uuid.Nil},
	}
	for _, key := range keys {
		for _, ch := range b.subs[key] {
			select {
			case ch <- change:
			default:
			}
		}
	}
}
