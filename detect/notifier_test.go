package detect

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierCoalescesBursts(t *testing.T) {
	n := NewPushNotifier(10 * time.Millisecond)

	var mu sync.Mutex
	var got []string
	cancel := n.Subscribe("two-sum", func(text string) {
		mu.Lock()
		got = append(got, text)
		mu.Unlock()
	})
	defer cancel()

	// a render burst: several partial states within one window
	n.Publish("two-sum", "Compiling")
	n.Publish("two-sum", "Running test cases")
	n.Publish("two-sum", "Accepted")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{"Accepted"}, got)
	mu.Unlock()
}

func TestNotifierRegionIsolation(t *testing.T) {
	n := NewPushNotifier(time.Millisecond)

	var mu sync.Mutex
	var got []string
	cancel := n.Subscribe("two-sum", func(text string) {
		mu.Lock()
		got = append(got, text)
		mu.Unlock()
	})
	defer cancel()

	n.Publish("fizzbuzz", "Accepted")

	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	assert.Empty(t, got)
	mu.Unlock()
}

func TestNotifierCancelDetaches(t *testing.T) {
	n := NewPushNotifier(time.Millisecond)

	cancel := n.Subscribe("two-sum", func(string) {})
	require.True(t, n.HasSubscribers("two-sum"))

	cancel()
	assert.False(t, n.HasSubscribers("two-sum"))
}
