// Package live tracks the delivery channel of every currently connected
// user. The table is process-local and empty after a restart: clients must
// reconnect to receive pushes again, durable rows are unaffected.
package live

import (
	"strconv"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Channel is an open delivery path to a single user. Send must be safe for
// concurrent use; implementations report a failed transport with an error
// and are simply skipped by callers.
type Channel interface {
	Send(payload []byte) error
	Close()
}

// Registry maps a user id to exactly one live channel. A newer connection
// for the same user replaces the older one (last-connect-wins).
type Registry struct {
	users cmap.ConcurrentMap[string, Channel]
}

func NewRegistry() *Registry {
	return &Registry{users: cmap.New[Channel]()}
}

func key(userID uint64) string {
	return strconv.FormatUint(userID, 10)
}

// Register records ch as the user's only live channel, closing any channel
// it replaces.
func (r *Registry) Register(userID uint64, ch Channel) {
	r.users.Upsert(key(userID), ch, func(exist bool, old, newValue Channel) Channel {
		if exist && old != newValue {
			old.Close()
		}
		return newValue
	})
}

// Unregister removes the mapping only if ch is still the registered channel,
// so a stale disconnect cannot evict a newer connection. Calling it again
// for the same pair is a no-op.
func (r *Registry) Unregister(userID uint64, ch Channel) {
	r.users.RemoveCb(key(userID), func(k string, current Channel, exists bool) bool {
		return exists && current == ch
	})
}

func (r *Registry) Lookup(userID uint64) (Channel, bool) {
	return r.users.Get(key(userID))
}
