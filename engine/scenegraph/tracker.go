package scenegraph

import (
	"sync"

	"github.com/hickb/hdcycles/engine/containers"
)

const maxPendingPrims = 4096

/**
 * @brief Accumulates dirty bits per primitive between sync rounds and hands
 * them out in first-marked order. The host notifies it on every edit; the
 * sync loop drains it once per round.
 */
type ChangeTracker struct {
	mu      sync.Mutex
	bits    map[string]DirtyBits
	pending *containers.RingQueue[string]
}

func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{
		bits:    make(map[string]DirtyBits),
		pending: containers.NewRingQueue[string](maxPendingPrims),
	}
}

// MarkDirty accumulates bits for a primitive and queues it for the next
// round. Marking an already queued primitive only widens its mask.
func (ct *ChangeTracker) MarkDirty(id string, bits DirtyBits) {
	if bits == Clean {
		return
	}
	ct.mu.Lock()
	defer ct.mu.Unlock()

	if _, queued := ct.bits[id]; !queued {
		if err := ct.pending.Enqueue(id); err != nil {
			// Queue exhausted; the map still holds the bits so nothing is
			// lost, the id just resurfaces on a later round.
			return
		}
	}
	ct.bits[id] |= bits
}

// Next pops the next dirty primitive and its accumulated bits. The second
// return is false once the round is drained.
func (ct *ChangeTracker) Next() (string, DirtyBits, bool) {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	for {
		id, err := ct.pending.Dequeue()
		if err != nil {
			return "", Clean, false
		}
		bits, ok := ct.bits[id]
		if !ok {
			continue
		}
		delete(ct.bits, id)
		return id, bits, true
	}
}

// PendingCount reports how many primitives await sync.
func (ct *ChangeTracker) PendingCount() int {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return len(ct.bits)
}
