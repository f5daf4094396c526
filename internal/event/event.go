// Package event defines the push-channel wire protocol. Each event is a
// typed variant behind the Event interface, carried on the socket as a JSON
// envelope with a `t` discriminant.
package event

import (
	"encoding/json"
	"fmt"

	"collabchat/internal/message"
)

const (
	TagNewMessage = "new-message"
	TagEdited     = "message-edited"
	TagDeleted    = "message-deleted"
	TagTyping     = "typing"
	TagJoinRoom   = "join-room"
	TagLeaveRoom  = "leave-room"
)

// Event is one push-channel occurrence. ChannelID lets the consuming layer
// drop events for channels that are not currently active; the transport
// itself stays channel-agnostic.
type Event interface {
	Tag() string
	Channel() string
}

type NewMessage struct {
	ChannelID string          `json:"channel_id"`
	Message   message.Message `json:"message"`
}

func (e NewMessage) Tag() string     { return TagNewMessage }
func (e NewMessage) Channel() string { return e.ChannelID }

type Edited struct {
	ChannelID string `json:"channel_id"`
	ID        string `json:"id"`
	Body      string `json:"body"`
}

func (e Edited) Tag() string     { return TagEdited }
func (e Edited) Channel() string { return e.ChannelID }

type Deleted struct {
	ChannelID string `json:"channel_id"`
	ID        string `json:"id"`
}

func (e Deleted) Tag() string     { return TagDeleted }
func (e Deleted) Channel() string { return e.ChannelID }

// Typing carries no duration: expiry is a local timer on each receiver.
type Typing struct {
	ChannelID string `json:"channel_id"`
	ActorName string `json:"actor_name"`
}

func (e Typing) Tag() string     { return TagTyping }
func (e Typing) Channel() string { return e.ChannelID }

// RoomControl is the client->server join/leave frame.
type RoomControl struct {
	Action    string `json:"action"`
	ChannelID string `json:"channel_id"`
}

func (e RoomControl) Tag() string     { return e.Action }
func (e RoomControl) Channel() string { return e.ChannelID }

type envelope struct {
	T       string          `json:"t"`
	Payload json.RawMessage `json:"payload"`
}

func Encode(ev Event) ([]byte, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{T: ev.Tag(), Payload: payload})
}

// Decode parses an envelope into its variant. Unknown tags are an error, not
// a panic; callers log and drop the frame.
func Decode(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed event envelope: %w", err)
	}
	switch env.T {
	case TagNewMessage:
		var ev NewMessage
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case TagEdited:
		var ev Edited
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case TagDeleted:
		var ev Deleted
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case TagTyping:
		var ev Typing
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return nil, err
		}
		return ev, nil
	case TagJoinRoom, TagLeaveRoom:
		var ev RoomControl
		if err := json.Unmarshal(env.Payload, &ev); err != nil {
			return nil, err
		}
		ev.Action = env.T
		return ev, nil
	default:
		return nil, fmt.Errorf("unknown event tag %q", env.T)
	}
}
