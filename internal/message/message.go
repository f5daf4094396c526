package message

import (
	"time"
)

// Kind discriminates the message body variant. A message is exactly one of
// these; the renderer and permission checks switch on it.
type Kind string

const (
	KindPlain      Kind = "plain"
	KindReply      Kind = "reply"
	KindPoll       Kind = "poll"
	KindAttachment Kind = "attachment"
)

type Status string

const (
	// StatusComposing exists only on the compose path, before the message
	// enters a store.
	StatusComposing Status = "composing"
	StatusPending   Status = "pending"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
	StatusSeen      Status = "seen"
)

// AttachmentKind classifies an uploaded file.
type AttachmentKind string

const (
	AttachmentImage    AttachmentKind = "image"
	AttachmentAudio    AttachmentKind = "audio"
	AttachmentDocument AttachmentKind = "document"
)

// ReplyRef is a denormalized snapshot of the message being replied to. It is
// taken at reply time and never updated, even if the target is later edited
// or deleted.
type ReplyRef struct {
	TargetID         string `json:"target_id"`
	TargetAuthorName string `json:"target_author_name"`
	Snippet          string `json:"snippet"`
}

type Attachment struct {
	URL  string         `json:"url"`
	Kind AttachmentKind `json:"kind"`
}

type Message struct {
	// ID is the server-assigned id once delivered, or the client correlation
	// id while the message is pending.
	ID        string    `json:"id"`
	ChannelID string    `json:"channel_id"`
	AuthorID  string    `json:"author_id"`
	// AuthorName is the author's display name as known at send time.
	AuthorName string    `json:"author_name,omitempty"`
	Kind       Kind      `json:"kind"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
	Status     Status    `json:"status"`

	// CachedPlain holds the unwrapped body for a locally originated message
	// so it can be rendered before the round trip completes. Never sent on
	// the wire.
	CachedPlain string `json:"-"`

	ReplyTo    *ReplyRef   `json:"reply_to,omitempty"`
	Poll       *Poll       `json:"poll,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`

	// Edited is monotonic: once set it never reverts.
	Edited  bool `json:"edited"`
	Starred bool `json:"starred"`

	// Reactions maps emoji to the set of actor ids that toggled it on.
	Reactions map[string]map[string]bool `json:"reactions,omitempty"`

	// SeenBy is the set of collaborators known to have viewed the message.
	SeenBy map[string]bool `json:"seen_by,omitempty"`
}

// ToggleReaction flips the (actor, emoji) pair. Toggling twice restores the
// prior state.
func (m *Message) ToggleReaction(emoji, actorID string) {
	if m.Reactions == nil {
		m.Reactions = make(map[string]map[string]bool)
	}
	actors := m.Reactions[emoji]
	if actors == nil {
		actors = make(map[string]bool)
		m.Reactions[emoji] = actors
	}
	if actors[actorID] {
		delete(actors, actorID)
		if len(actors) == 0 {
			delete(m.Reactions, emoji)
		}
		return
	}
	actors[actorID] = true
}

// SeenCount reports how many distinct collaborators have seen the message.
func (m *Message) SeenCount() int {
	return len(m.SeenBy)
}

func (m *Message) MarkSeenBy(actorID string) {
	if m.SeenBy == nil {
		m.SeenBy = make(map[string]bool)
	}
	m.SeenBy[actorID] = true
}

// Clone returns a deep copy, so snapshots handed to callers cannot alias the
// store's entry.
func (m *Message) Clone() *Message {
	cp := *m
	if m.ReplyTo != nil {
		r := *m.ReplyTo
		cp.ReplyTo = &r
	}
	if m.Attachment != nil {
		a := *m.Attachment
		cp.Attachment = &a
	}
	if m.Poll != nil {
		cp.Poll = m.Poll.clone()
	}
	if m.Reactions != nil {
		cp.Reactions = make(map[string]map[string]bool, len(m.Reactions))
		for emoji, actors := range m.Reactions {
			set := make(map[string]bool, len(actors))
			for id := range actors {
				set[id] = true
			}
			cp.Reactions[emoji] = set
		}
	}
	if m.SeenBy != nil {
		cp.SeenBy = make(map[string]bool, len(m.SeenBy))
		for id := range m.SeenBy {
			cp.SeenBy[id] = true
		}
	}
	return &cp
}
