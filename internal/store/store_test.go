package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collabchat/internal/event"
	"collabchat/internal/message"
)

func pending(id, body string) *message.Message {
	return &message.Message{
		ID:        id,
		ChannelID: "c1",
		AuthorID:  "u1",
		Body:      body,
		Status:    message.StatusPending,
	}
}

func TestReconciliation(t *testing.T) {
	s := New("c1")
	s.Append(pending("corr-1", "hello"))

	ok := s.ApplyAck("corr-1", &message.Message{
		ID:        "m-42",
		Body:      "hello",
		CreatedAt: time.Now(),
	})
	require.True(t, ok)

	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "m-42", snap[0].ID)
	assert.Equal(t, message.StatusDelivered, snap[0].Status)
	assert.Equal(t, "hello", snap[0].Body)

	// The correlation id no longer resolves.
	_, found := s.Get("corr-1")
	assert.False(t, found)
}

func TestApplyAck_DroppedWhenEntryGone(t *testing.T) {
	s := New("c1")
	s.Append(pending("corr-1", "hello"))
	s.Remove("corr-1") // racing delete

	assert.False(t, s.ApplyAck("corr-1", &message.Message{ID: "m-42"}))
	assert.Equal(t, 0, s.Len())
}

func TestApplyAck_OutOfOrder(t *testing.T) {
	s := New("c1")
	s.Append(pending("corr-1", "first"))
	s.Append(pending("corr-2", "second"))

	require.True(t, s.ApplyAck("corr-2", &message.Message{ID: "m-2", Body: "second"}))
	require.True(t, s.ApplyAck("corr-1", &message.Message{ID: "m-1", Body: "first"}))

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "m-1", snap[0].ID)
	assert.Equal(t, "m-2", snap[1].ID)
}

func TestApplyPush_NewMessageIdempotent(t *testing.T) {
	s := New("c1")
	ev := event.NewMessage{ChannelID: "c1", Message: message.Message{ID: "m-7", Body: "once"}}

	s.ApplyPush(ev)
	s.ApplyPush(ev)

	assert.Equal(t, 1, s.Len())
}

func TestApplyPush_OwnEchoAfterAck(t *testing.T) {
	s := New("c1")
	s.Append(pending("corr-1", "hello"))
	s.ApplyAck("corr-1", &message.Message{ID: "m-42", Body: "hello"})

	// The server broadcasts the message back to its author; the echo must
	// not duplicate the reconciled entry.
	s.ApplyPush(event.NewMessage{ChannelID: "c1", Message: message.Message{ID: "m-42", Body: "hello"}})
	assert.Equal(t, 1, s.Len())
}

func TestApplyAck_EchoBeforeAck(t *testing.T) {
	s := New("c1")
	s.Append(pending("corr-1", "hello"))

	// The server broadcasts the confirmed message before the durable
	// response lands. The ack must then retire the pending entry instead of
	// minting a second one under the same confirmed id.
	s.ApplyPush(event.NewMessage{ChannelID: "c1", Message: message.Message{ID: "m-42", Body: "hello"}})
	require.True(t, s.ApplyAck("corr-1", &message.Message{ID: "m-42", Body: "hello"}))

	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "m-42", snap[0].ID)

	_, found := s.Get("corr-1")
	assert.False(t, found)

	// The surviving entry still resolves by id after the dedup.
	s.ApplyPush(event.Edited{ChannelID: "c1", ID: "m-42", Body: "patched"})
	m, ok := s.Get("m-42")
	require.True(t, ok)
	assert.Equal(t, "patched", m.Body)
}

func TestApplyPush_EditAndDelete(t *testing.T) {
	s := New("c1")
	s.ApplyPush(event.NewMessage{ChannelID: "c1", Message: message.Message{ID: "m-1", Body: "v1"}})

	s.ApplyPush(event.Edited{ChannelID: "c1", ID: "m-1", Body: "v2"})
	m, ok := s.Get("m-1")
	require.True(t, ok)
	assert.Equal(t, "v2", m.Body)
	assert.True(t, m.Edited)

	s.ApplyPush(event.Deleted{ChannelID: "c1", ID: "m-1"})
	assert.Equal(t, 0, s.Len())
}

func TestApplyPush_AbsentTargetsNoOp(t *testing.T) {
	s := New("c1")
	// Events for messages this client never loaded (e.g. a channel it has
	// since left) are dropped silently.
	s.ApplyPush(event.Edited{ChannelID: "c1", ID: "ghost", Body: "x"})
	s.ApplyPush(event.Deleted{ChannelID: "c1", ID: "ghost"})
	assert.Equal(t, 0, s.Len())
}

func TestOrdering_ArrivalOrderNotTimestampOrder(t *testing.T) {
	s := New("c1")
	later := message.Message{ID: "m-1", CreatedAt: time.Now()}
	earlier := message.Message{ID: "m-2", CreatedAt: time.Now().Add(-time.Hour)}

	s.ApplyPush(event.NewMessage{ChannelID: "c1", Message: later})
	// Arrives second but is timestamped earlier; it still lands at the tail.
	s.ApplyPush(event.NewMessage{ChannelID: "c1", Message: earlier})

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "m-1", snap[0].ID)
	assert.Equal(t, "m-2", snap[1].ID)
}

func TestLoad_ReplacesHistoryInServerOrder(t *testing.T) {
	s := New("c1")
	s.Append(pending("corr-1", "stale"))

	s.Load([]*message.Message{
		{ID: "m-1", Body: "a"},
		{ID: "m-2", Body: "b"},
	})

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "m-1", snap[0].ID)
	assert.Equal(t, "m-2", snap[1].ID)
}

func TestMutate_EditedFlagIsMonotonic(t *testing.T) {
	s := New("c1")
	s.ApplyPush(event.NewMessage{ChannelID: "c1", Message: message.Message{ID: "m-1"}})
	s.ApplyPush(event.Edited{ChannelID: "c1", ID: "m-1", Body: "v2"})

	s.Mutate("m-1", func(m *message.Message) { m.Edited = false })

	m, _ := s.Get("m-1")
	assert.True(t, m.Edited)
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := New("c1")
	s.ApplyPush(event.NewMessage{ChannelID: "c1", Message: message.Message{ID: "m-1", Body: "v1"}})

	snap := s.Snapshot()
	snap[0].Body = "mutated"

	m, _ := s.Get("m-1")
	assert.Equal(t, "v1", m.Body)
}

func TestRemove_ReindexesTail(t *testing.T) {
	s := New("c1")
	for _, id := range []string{"m-1", "m-2", "m-3"} {
		s.ApplyPush(event.NewMessage{ChannelID: "c1", Message: message.Message{ID: id}})
	}

	require.True(t, s.Remove("m-2"))
	// Entries after the removed one must still resolve by id.
	s.ApplyPush(event.Edited{ChannelID: "c1", ID: "m-3", Body: "patched"})
	m, ok := s.Get("m-3")
	require.True(t, ok)
	assert.Equal(t, "patched", m.Body)
}
