package auth

import (
	"sync"

	"github.com/blog-platform-api/internal/models"
	"github.com/rs/zerolog"
)

// subscriberBuffer is the per-subscriber event channel capacity.
// A subscriber that falls this far behind starts losing events.
const subscriberBuffer = 16

// Notifier fans auth-state change events out to subscribers. It is the
// in-process replacement for a hosted provider's auth-state-change
// push: sign-in, sign-out and confirmation all publish here, and the
// websocket event endpoint subscribes per connection.
type Notifier struct {
	mu   sync.Mutex
	subs map[int]chan models.AuthEvent
	next int
	log  zerolog.Logger
}

// NewNotifier creates a Notifier
func NewNotifier(log zerolog.Logger) *Notifier {
	return &Notifier{
		subs: make(map[int]chan models.AuthEvent),
		log:  log.With().Str("component", "auth_notifier").Logger(),
	}
}

// Subscribe registers a listener and returns its event channel plus an
// unsubscribe function. Unsubscribing closes the channel; it is safe
// to call more than once.
func (n *Notifier) Subscribe() (<-chan models.AuthEvent, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++

	ch := make(chan models.AuthEvent, subscriberBuffer)
	n.subs[id] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			if sub, ok := n.subs[id]; ok {
				delete(n.subs, id)
				close(sub)
			}
		})
	}

	return ch, unsubscribe
}

// Publish delivers an event to every subscriber without blocking;
// slow subscribers drop events rather than stall a login.
func (n *Notifier) Publish(event models.AuthEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id, ch := range n.subs {
		select {
		case ch <- event:
		default:
			n.log.Warn().
				Int("subscriber", id).
				Str("event", string(event.Type)).
				Msg("Subscriber buffer full, dropping event")
		}
	}
}

// SubscriberCount returns the number of active subscribers
func (n *Notifier) SubscriberCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}
