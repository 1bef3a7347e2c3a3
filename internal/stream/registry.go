package stream

import (
	"errors"
	"sync"
)

var ErrDuplicateConnection = errors.New("connection already registered")

// Subscription pairs a connection with the symbol it currently watches.
type Subscription struct {
	Conn   Conn
	Symbol string
}

// Registry tracks every open streaming connection and its selected symbol.
// It is shared by the broadcaster and all connection handlers; the lock is
// only held for map operations, never across I/O.
type Registry struct {
	mu   sync.RWMutex
	subs map[Conn]string
}

func NewRegistry() *Registry {
	return &Registry{subs: make(map[Conn]string)}
}

func (r *Registry) Register(conn Conn, symbol string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subs[conn]; ok {
		return ErrDuplicateConnection
	}
	r.subs[conn] = symbol
	return nil
}

// SetSymbol changes the watched symbol. It reports false, without error,
// when the connection has already been removed.
func (r *Registry) SetSymbol(conn Conn, symbol string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subs[conn]; !ok {
		return false
	}
	r.subs[conn] = symbol
	return true
}

// Remove deletes the entry. It is safe to call repeatedly and concurrently;
// only the call that actually removed the entry reports true.
func (r *Registry) Remove(conn Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subs[conn]; !ok {
		return false
	}
	delete(r.subs, conn)
	return true
}

func (r *Registry) Symbol(conn Conn) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.subs[conn]
	return s, ok
}

// Snapshot returns a point-in-time copy of all subscriptions.
func (r *Registry) Snapshot() []Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Subscription, 0, len(r.subs))
	for conn, symbol := range r.subs {
		out = append(out, Subscription{Conn: conn, Symbol: symbol})
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}
