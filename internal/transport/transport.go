// Package transport carries the two channels to the backend: a durable
// request/response channel for history, sends, edits, deletes and uploads,
// and a subscription push channel scoped to a joined room. The adapter is
// injectable so channel-selection scope owns the join/leave lifecycle and
// tests can stand in fakes.
package transport

import (
	"context"
	"io"

	"collabchat/internal/event"
	"collabchat/internal/message"
)

// SendRequest is one outbound message. Body is wireform by the time it
// reaches the transport; the codec runs in the dispatcher.
type SendRequest struct {
	ChannelID  string              `json:"channel_id"`
	Kind       message.Kind        `json:"kind"`
	Body       string              `json:"body"`
	ReplyTo    *message.ReplyRef   `json:"reply_to,omitempty"`
	Poll       *message.Poll       `json:"poll,omitempty"`
	Attachment *message.Attachment `json:"attachment,omitempty"`
}

// Durable is the request/response channel. Every call carries the session
// credential; a 401-equivalent surfaces as *common.AuthError and is never
// retried here.
type Durable interface {
	FetchHistory(ctx context.Context, channelID string) ([]*message.Message, error)
	Send(ctx context.Context, req SendRequest) (*message.Message, error)
	Edit(ctx context.Context, messageID, body string) (*message.Message, error)
	Delete(ctx context.Context, messageID string) error
	Upload(ctx context.Context, channelID, filename string, r io.Reader) (message.Attachment, error)
	React(ctx context.Context, messageID, emoji string) error
	Vote(ctx context.Context, messageID string, optionIDs []int) error
	Star(ctx context.Context, messageID string, starred bool) error
	Report(ctx context.Context, messageID, reason string) error
}

// Push is the room-scoped subscription channel. Join and leave are
// idempotent; the adapter delivers every event it receives and leaves
// active-channel filtering to the consumer.
type Push interface {
	JoinRoom(channelID string) error
	LeaveRoom(channelID string) error
	EmitTyping(channelID, actorName string) error
	Events() <-chan event.Event
	Close() error
}
