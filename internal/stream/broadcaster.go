// Package stream fans assessment-change events out to subscribers. The
// engine itself returns plain values; this is the explicit observer layer
// the rest of the service (SSE clients, future notifiers) hangs off.
package stream

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/emberline/wildfire-watch/internal/models"
)

// Event is published whenever a monitored location's evacuation status
// changes between polls.
type Event struct {
	LocationID string                  `json:"location_id"`
	Label      string                  `json:"label"`
	Status     models.EvacuationStatus `json:"status"`
	PrevStatus models.EvacuationStatus `json:"previous_status"`
	Tier       models.RiskTier         `json:"tier"`
	At         time.Time               `json:"at"`
}

type Broadcaster struct {
	subscribers map[uint64]chan Event
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]chan Event),
	}
}

func (b *Broadcaster) Subscribe() (uint64, chan Event) {
	id := b.nextID.Add(1)
	ch := make(chan Event, 16) // Buffer for a burst of status flips in one poll

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Broadcast(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- ev:
		default:
			// Skip slow subscribers
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes all subscriber channels, causing streams to exit gracefully
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
