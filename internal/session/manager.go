package session

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"sync"
)

// Manager hands out one Store per browser session. Stores are cached per
// session id so subscribers and the in-memory current value stay consistent
// within the process; the backing Storage carries the claim across restarts.
type Manager struct {
	storage Storage
	log     *slog.Logger

	mu      sync.Mutex
	stores  map[string]*Store
	pruneAt int
}

// defaultPruneAt bounds the cache against cookie-less clients that mint a
// fresh session id on every request.
const defaultPruneAt = 1024

func NewManager(storage Storage, log *slog.Logger) *Manager {
	return &Manager{
		storage: storage,
		log:     log,
		stores:  make(map[string]*Store),
		pruneAt: defaultPruneAt,
	}
}

// Store returns the session store for the given session id, creating it on
// first use. Anonymous idle stores are evicted once the cache crosses its
// bound; a store evicted while its identity is still in the backing Storage
// is reconstructed from the slot on the next request.
func (m *Manager) Store(sid string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, ok := m.stores[sid]
	if !ok {
		if len(m.stores) >= m.pruneAt {
			m.prune()
		}
		store = NewStore(m.storage, slotKey(sid), nil, m.log)
		m.stores[sid] = store
	}
	return store
}

func (m *Manager) prune() {
	evicted := 0
	for sid, store := range m.stores {
		if store.Idle() {
			delete(m.stores, sid)
			evicted++
		}
	}
	m.log.Debug("pruned idle session stores", "evicted", evicted, "cached", len(m.stores))
}

// NewSessionID generates an opaque session id for the browser cookie.
func NewSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func slotKey(sid string) string {
	return "session:" + sid + ":" + SlotCurrentUser
}
