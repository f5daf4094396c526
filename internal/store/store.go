// Package store holds the per-channel ordered message sequence. It is the
// single mutation point for a channel: local optimistic inserts, ack
// reconciliation and inbound push events all funnel through one mutex, which
// is what keeps a concurrent optimistic-send and push-echo from inserting
// duplicates.
package store

import (
	"sync"

	"collabchat/internal/event"
	"collabchat/internal/message"
)

type Store struct {
	mu        sync.Mutex
	channelID string
	entries   []*message.Message

	// index maps a message id (server id, or correlation id while pending)
	// to its position in entries, so an ack swaps identity in O(1) and
	// out-of-order acks still land.
	index map[string]int
}

func New(channelID string) *Store {
	return &Store{
		channelID: channelID,
		index:     make(map[string]int),
	}
}

func (s *Store) ChannelID() string { return s.channelID }

// Load replaces the sequence with fetched history, in server order. Used on
// channel selection and manual refresh.
func (s *Store) Load(history []*message.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = s.entries[:0]
	s.index = make(map[string]int, len(history))
	for _, m := range history {
		s.appendLocked(m)
	}
}

// Append inserts an optimistic entry at the tail. The entry's id is its
// correlation id and its status Pending. Ordering is arrival order, never
// re-sorted by timestamp: a later-arriving but earlier-timestamped message
// still lands at the tail.
func (s *Store) Append(m *message.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(m)
}

func (s *Store) appendLocked(m *message.Message) {
	if _, exists := s.index[m.ID]; exists {
		return
	}
	s.index[m.ID] = len(s.entries)
	s.entries = append(s.entries, m)
}

// ApplyAck reconciles a server confirmation into the pending entry with the
// matching correlation id: the identity swaps to the server id, server
// fields are copied and status becomes Delivered. An ack with no matching
// entry (racing delete, duplicate ack) is dropped without error.
func (s *Store) ApplyAck(correlationID string, confirmed *message.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[correlationID]
	if !ok {
		return false
	}
	// The own echo can beat the ack: the confirmed id is then already live
	// and the pending entry is redundant. Keep the echoed entry, drop the
	// pending one.
	if _, exists := s.index[confirmed.ID]; exists {
		s.removeAtLocked(i)
		return true
	}
	entry := s.entries[i]
	delete(s.index, correlationID)
	entry.ID = confirmed.ID
	entry.CreatedAt = confirmed.CreatedAt
	entry.Body = confirmed.Body
	entry.Status = message.StatusDelivered
	s.index[entry.ID] = i
	return true
}

// ApplyPush folds one push event into the sequence. The dispatch is
// exhaustive over the event variants; typing and room control never touch
// stored state.
func (s *Store) ApplyPush(ev event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch e := ev.(type) {
	case event.NewMessage:
		// Own echo or duplicate delivery: the id is already present, so
		// applying the identical event twice keeps exactly one entry.
		if _, exists := s.index[e.Message.ID]; exists {
			return
		}
		m := e.Message
		if m.Status == "" {
			m.Status = message.StatusDelivered
		}
		s.appendLocked(&m)
	case event.Edited:
		// Absent id: the message may belong to a channel this client has
		// since left. No-op.
		if i, ok := s.index[e.ID]; ok {
			s.entries[i].Body = e.Body
			s.entries[i].Edited = true
		}
	case event.Deleted:
		if i, ok := s.index[e.ID]; ok {
			s.removeAtLocked(i)
		}
	case event.Typing, event.RoomControl:
		// Ephemeral; not part of channel state.
	}
}

// Mutate applies a patch to the entry with the given id under the store
// lock. Reports whether the entry existed.
func (s *Store) Mutate(id string, patch func(*message.Message)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return false
	}
	edited := s.entries[i].Edited
	patch(s.entries[i])
	if edited {
		// Edited is monotonic.
		s.entries[i].Edited = true
	}
	return true
}

// Remove drops the entry entirely. Deletion leaves no tombstone.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.removeAtLocked(i)
	return true
}

func (s *Store) removeAtLocked(i int) {
	delete(s.index, s.entries[i].ID)
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	for j := i; j < len(s.entries); j++ {
		s.index[s.entries[j].ID] = j
	}
}

// Snapshot returns a deep copy of the ordered sequence. Callers render from
// the copy; they never hold a second mutable view of channel state.
func (s *Store) Snapshot() []*message.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*message.Message, len(s.entries))
	for i, m := range s.entries {
		out[i] = m.Clone()
	}
	return out
}

// Len reports the number of live entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Get returns a copy of one entry by id.
func (s *Store) Get(id string) (*message.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.entries[i].Clone(), true
}
