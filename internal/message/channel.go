package message

import (
	"context"
	"time"
)

type ChannelStatus string

const (
	ChannelUpcoming ChannelStatus = "upcoming"
	ChannelActive   ChannelStatus = "active"
	ChannelClosed   ChannelStatus = "closed"
)

// Channel is a two-party conversation tied to a collaboration session. The
// messaging core only reads these fields; lifecycle transitions happen in the
// scheduling system.
type Channel struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Participants [2]string     `json:"participants"`
	Status       ChannelStatus `json:"status"`
	NextActiveAt *time.Time    `json:"next_active_at,omitempty"`
	ClosedAt     *time.Time    `json:"closed_at,omitempty"`
	Unread       int           `json:"unread"`
}

// Directory is the external channel-discovery collaborator. Unread counts
// and channel lifecycle live there, not in the messaging core.
type Directory interface {
	ListChannels(ctx context.Context, actorID string) ([]*Channel, error)
}
