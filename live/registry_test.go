package live

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	mu     sync.Mutex
	sent   [][]byte
	closed bool
}

func (ch *fakeChannel) Send(payload []byte) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.sent = append(ch.sent, payload)
	return nil
}

func (ch *fakeChannel) Close() {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.closed = true
}

func (ch *fakeChannel) isClosed() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.closed
}

func TestRegisterLastConnectWins(t *testing.T) {
	registry := NewRegistry()
	first := &fakeChannel{}
	second := &fakeChannel{}

	registry.Register(7, first)
	registry.Register(7, second)

	current, ok := registry.Lookup(7)
	require.True(t, ok)
	assert.Same(t, second, current.(*fakeChannel))
	assert.True(t, first.isClosed(), "replaced channel must be closed")
	assert.False(t, second.isClosed())
}

func TestUnregisterIgnoresStaleChannel(t *testing.T) {
	registry := NewRegistry()
	stale := &fakeChannel{}
	current := &fakeChannel{}

	registry.Register(7, stale)
	registry.Register(7, current)

	// The old connection's deferred cleanup fires after the replacement.
	registry.Unregister(7, stale)

	got, ok := registry.Lookup(7)
	require.True(t, ok)
	assert.Same(t, current, got.(*fakeChannel))
}

func TestUnregisterIsIdempotent(t *testing.T) {
	registry := NewRegistry()
	ch := &fakeChannel{}
	registry.Register(7, ch)

	registry.Unregister(7, ch)
	registry.Unregister(7, ch)

	_, ok := registry.Lookup(7)
	assert.False(t, ok)
}

func TestLookupUnknownUser(t *testing.T) {
	registry := NewRegistry()
	_, ok := registry.Lookup(42)
	assert.False(t, ok)
}
