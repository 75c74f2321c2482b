package detect

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// Notifier is the change-notification capability: watch a region, get
// called back on relevant mutation, stop on cancel. It abstracts over
// the browser primitive the shell actually uses.
type Notifier interface {
	Subscribe(region string, fn func(text string)) (cancel func())
}

type subscription struct {
	fn        func(text string)
	debounced func(func())

	mu   sync.Mutex
	last string
}

// PushNotifier receives mutation text pushed over HTTP by the shell
// and fans it out to subscribers of the matching region. Notifications
// are coalesced per subscription so a verdict is never evaluated
// mid-render.
type PushNotifier struct {
	mu       sync.Mutex
	subs     map[string]map[int]*subscription
	nextID   int
	coalesce time.Duration
}

func NewPushNotifier(coalesce time.Duration) *PushNotifier {
	return &PushNotifier{
		subs:     make(map[string]map[int]*subscription),
		coalesce: coalesce,
	}
}

// Subscribe implements Notifier.
func (n *PushNotifier) Subscribe(region string, fn func(text string)) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	if n.subs[region] == nil {
		n.subs[region] = make(map[int]*subscription)
	}
	n.subs[region][id] = &subscription{
		fn:        fn,
		debounced: debounce.New(n.coalesce),
	}

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs[region], id)
		if len(n.subs[region]) == 0 {
			delete(n.subs, region)
		}
	}
}

// Publish delivers mutation text for a region. Only the latest text
// within the coalescing window reaches the subscriber.
func (n *PushNotifier) Publish(region, text string) {
	n.mu.Lock()
	subs := make([]*subscription, 0, len(n.subs[region]))
	for _, s := range n.subs[region] {
		subs = append(subs, s)
	}
	n.mu.Unlock()

	for _, s := range subs {
		s.mu.Lock()
		s.last = text
		s.mu.Unlock()
		sub := s
		s.debounced(func() {
			sub.mu.Lock()
			latest := sub.last
			sub.mu.Unlock()
			sub.fn(latest)
		})
	}
}

// HasSubscribers reports whether any subscription watches the region.
func (n *PushNotifier) HasSubscribers(region string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs[region]) > 0
}
