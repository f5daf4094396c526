package transport

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"collabchat/internal/event"
)

// WSPush is the push channel over a single websocket. One goroutine owns all
// reads; writes are serialized by a mutex because gorilla connections allow
// one concurrent writer.
type WSPush struct {
	conn   *websocket.Conn
	events chan event.Event

	writeMu sync.Mutex

	mu     sync.Mutex
	joined map[string]bool
	closed bool
}

// DialPush connects to the backend's websocket endpoint with the session
// bearer token and starts the read loop.
func DialPush(wsURL, token string) (*WSPush, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		return nil, err
	}
	p := &WSPush{
		conn:   conn,
		events: make(chan event.Event, 64),
		joined: make(map[string]bool),
	}
	go p.readLoop()
	return p, nil
}

func (p *WSPush) readLoop() {
	defer close(p.events)
	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			p.mu.Lock()
			closed := p.closed
			p.mu.Unlock()
			if !closed {
				log.Printf("push channel read error: %v", err)
			}
			return
		}
		ev, err := event.Decode(data)
		if err != nil {
			log.Printf("dropping push frame: %v", err)
			continue
		}
		pushEvents.WithLabelValues(ev.Tag()).Inc()
		p.events <- ev
	}
}

// JoinRoom subscribes to a channel's room. Joining a room twice is a no-op.
func (p *WSPush) JoinRoom(channelID string) error {
	p.mu.Lock()
	if p.joined[channelID] {
		p.mu.Unlock()
		return nil
	}
	p.joined[channelID] = true
	p.mu.Unlock()
	return p.write(event.RoomControl{Action: event.TagJoinRoom, ChannelID: channelID})
}

// LeaveRoom unsubscribes. Leaving a room that was never joined is a no-op.
func (p *WSPush) LeaveRoom(channelID string) error {
	p.mu.Lock()
	if !p.joined[channelID] {
		p.mu.Unlock()
		return nil
	}
	delete(p.joined, channelID)
	p.mu.Unlock()
	return p.write(event.RoomControl{Action: event.TagLeaveRoom, ChannelID: channelID})
}

func (p *WSPush) EmitTyping(channelID, actorName string) error {
	return p.write(event.Typing{ChannelID: channelID, ActorName: actorName})
}

func (p *WSPush) Events() <-chan event.Event { return p.events }

func (p *WSPush) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return p.conn.Close()
}

func (p *WSPush) write(ev event.Event) error {
	data, err := event.Encode(ev)
	if err != nil {
		return err
	}
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.conn.WriteMessage(websocket.TextMessage, data)
}
