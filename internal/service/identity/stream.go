// Package identity exposes the authenticated identity as a live,
// push-updated value and resolves it to an authorization role. It is
// the two-stage pipeline between the credential manager and the
// content policy: session change -> identity delivery -> role lookup.
package identity

import (
	"sync"

	"personal-site/internal/domain/entity"
)

// Stream broadcasts the current identity (or nil for "no identity") to
// subscribers. At most one identity is current at any time. Deliveries
// are serialized under the stream lock, so subscribers observe session
// transitions in exactly the order they occurred.
type Stream struct {
	mu     sync.Mutex
	cur    *entity.Identity
	subs   map[int]func(*entity.Identity)
	nextID int
}

// NewStream returns an empty stream with no current identity.
func NewStream() *Stream {
	return &Stream{subs: map[int]func(*entity.Identity){}}
}

// Subscribe registers a callback and immediately delivers the current
// identity to it. The returned unsubscribe function is idempotent;
// forgetting to call it leaks the subscription for the lifetime of the
// stream.
func (s *Stream) Subscribe(fn func(*entity.Identity)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	cur := s.cur
	// 現在値を購読時に即時配信する。ロックを保持したまま呼ぶことで
	// この配信と後続の Publish の順序が入れ替わらないことを保証する。
	fn(cur)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Publish replaces the current identity and delivers it to every
// subscriber. Concurrent publishers are serialized; no subscriber ever
// sees deliveries out of order relative to the publish sequence.
func (s *Stream) Publish(identity *entity.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = identity
	for _, fn := range s.subs {
		fn(identity)
	}
}

// Current returns the identity most recently published, or nil.
func (s *Stream) Current() *entity.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}
