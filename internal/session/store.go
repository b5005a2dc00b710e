package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pxlit-projects/project-IanNotermansPXL/internal/blog"
)

// SlotCurrentUser is the fixed storage slot name holding the serialized
// identity claim.
const SlotCurrentUser = "currentUser"

// Navigator performs an external navigation, used by Logout to send the
// user back to the login surface.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// Store holds the current identity claim for one browser session. The
// storage slot is read once at construction; afterwards Current is a pure
// in-memory read and Login/Logout write through to the slot and publish the
// new value to every subscriber.
type Store struct {
	storage Storage
	slot    string
	nav     Navigator
	log     *slog.Logger

	mu      sync.Mutex
	current *blog.Identity
	subs    map[int]chan *blog.Identity
	nextSub int
}

// NewStore seeds the initial value from the storage slot. An absent or
// malformed value means anonymous; construction never fails on bad stored
// JSON.
func NewStore(storage Storage, slot string, nav Navigator, log *slog.Logger) *Store {
	store := &Store{
		storage: storage,
		slot:    slot,
		nav:     nav,
		log:     log,
		subs:    make(map[int]chan *blog.Identity),
	}

	raw, err := storage.Get(slot)
	if err == nil {
		var identity blog.Identity
		if err := json.Unmarshal(raw, &identity); err != nil {
			log.Warn("discarding malformed stored identity", "slot", slot, "error", err)
		} else {
			store.current = &identity
		}
	} else if !errors.Is(err, ErrNotFound) {
		log.Warn("failed to read stored identity", "slot", slot, "error", err)
	}

	return store
}

// Login replaces any prior identity unconditionally, persists the new claim
// and publishes it.
func (s *Store) Login(username string, role blog.Role) error {
	identity := &blog.Identity{Username: username, Role: role}

	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}
	if err := s.storage.Set(s.slot, raw); err != nil {
		return fmt.Errorf("persist identity: %w", err)
	}

	s.publish(identity)
	return nil
}

// Logout clears the slot, publishes anonymous and navigates to the login
// surface.
func (s *Store) Logout() error {
	if err := s.storage.Delete(s.slot); err != nil {
		return fmt.Errorf("clear identity: %w", err)
	}

	s.publish(nil)

	if s.nav != nil {
		s.nav.Navigate("/login")
	}
	return nil
}

// Current returns the last published identity, nil when anonymous.
func (s *Store) Current() *blog.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Idle reports whether the store is anonymous and has no subscribers, so
// dropping it loses nothing.
func (s *Store) Idle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current == nil && len(s.subs) == 0
}

// Subscribe returns a channel that immediately carries the current value and
// then every change, plus a cancel function releasing the subscription. A
// subscriber that stops draining loses updates rather than blocking login.
func (s *Store) Subscribe() (<-chan *blog.Identity, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan *blog.Identity, 16)
	ch <- s.current

	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (s *Store) publish(identity *blog.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = identity
	for id, sub := range s.subs {
		select {
		case sub <- identity:
		default:
			s.log.Warn("dropping identity update for slow subscriber", "subscriber", id)
		}
	}
}
