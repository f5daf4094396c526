// Package dispatch turns user intents into optimistic store mutations plus
// transport calls, and reconciles each call's outcome back into the store.
// It is the single logical owner of the active channel's store: local
// reconciliations and inbound push events both land through it.
package dispatch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"collabchat/internal/codec"
	"collabchat/internal/common"
	"collabchat/internal/event"
	"collabchat/internal/message"
	"collabchat/internal/perm"
	"collabchat/internal/presence"
	"collabchat/internal/store"
	"collabchat/internal/transport"
)

// Draft is a composed message ready to send. Content is plaintext; the
// dispatcher wraps it through the codec before it reaches the transport.
type Draft struct {
	Content string
	ReplyTo string // id of the message being replied to, empty otherwise

	// ReplySnapshot carries an already-taken reply reference, bypassing the
	// ReplyTo lookup. Retries use it so a failed reply keeps the snapshot
	// the user saw even if the target has since been edited or deleted.
	ReplySnapshot *message.ReplyRef

	Poll       *message.Poll
	Attachment *message.Attachment
}

type Dispatcher struct {
	durable transport.Durable
	push    transport.Push
	codec   codec.Codec
	actor   common.Actor

	tracker *presence.Tracker
	emitter *presence.Emitter

	mu       sync.Mutex
	active   *store.Store
	activeID string
	onUpdate func(event.Event)

	done chan struct{}
}

// New builds a dispatcher. typingThrottle bounds how often keystrokes turn
// into typing signals; zero means the emitter default.
func New(durable transport.Durable, push transport.Push, c codec.Codec, actor common.Actor, typingThrottle time.Duration) *Dispatcher {
	d := &Dispatcher{
		durable: durable,
		push:    push,
		codec:   c,
		actor:   actor,
		tracker: presence.NewTracker(),
		emitter: presence.NewEmitter(push, typingThrottle),
		done:    make(chan struct{}),
	}
	go d.pump()
	return d
}

// pump applies push events to the active store. Events for any channel that
// is not the current selection are dropped here; the transport stays
// channel-agnostic.
func (d *Dispatcher) pump() {
	for {
		select {
		case <-d.done:
			return
		case ev, ok := <-d.push.Events():
			if !ok {
				return
			}
			d.mu.Lock()
			st, activeID := d.active, d.activeID
			d.mu.Unlock()
			if st == nil || ev.Channel() != activeID {
				continue
			}
			if typing, ok := ev.(event.Typing); ok {
				if typing.ActorName != d.actor.Name {
					d.tracker.Signal(typing.ActorName)
				}
				continue
			}
			st.ApplyPush(ev)
			d.mu.Lock()
			notify := d.onUpdate
			d.mu.Unlock()
			if notify != nil {
				notify(ev)
			}
		}
	}
}

// OnUpdate registers a callback fired after each push event lands in the
// active store. The terminal client uses it to redraw.
func (d *Dispatcher) OnUpdate(fn func(event.Event)) {
	d.mu.Lock()
	d.onUpdate = fn
	d.mu.Unlock()
}

// Select switches the active channel: leave the previous room, fetch history
// into a fresh store, then join the new room. If the selection changes again
// while history is in flight the stale result is discarded.
func (d *Dispatcher) Select(ctx context.Context, channelID string) error {
	d.mu.Lock()
	prev := d.activeID
	st := store.New(channelID)
	d.active = st
	d.activeID = channelID
	d.mu.Unlock()

	if prev != "" && prev != channelID {
		if err := d.push.LeaveRoom(prev); err != nil {
			log.Printf("leave room %s: %v", prev, err)
		}
	}
	d.tracker.Reset()

	history, err := d.durable.FetchHistory(ctx, channelID)
	if err != nil {
		return err
	}

	d.mu.Lock()
	stale := d.activeID != channelID
	if !stale {
		st.Load(history)
	}
	d.mu.Unlock()
	if stale {
		return common.ErrStaleChannel
	}
	return d.push.JoinRoom(channelID)
}

// Send runs the optimistic pipeline: validate, append a pending entry under
// a fresh correlation id, issue the transport call, reconcile. On transport
// failure the entry flips to Failed and stays visible for retry; it is never
// rolled back.
func (d *Dispatcher) Send(ctx context.Context, draft Draft) (string, error) {
	if draft.Poll == nil {
		if err := common.ValidateContent(draft.Content); err != nil {
			return "", err
		}
	}

	d.mu.Lock()
	st, channelID := d.active, d.activeID
	d.mu.Unlock()
	if st == nil {
		return "", fmt.Errorf("no channel selected")
	}

	req := transport.SendRequest{
		ChannelID:  channelID,
		Kind:       message.KindPlain,
		Body:       d.codec.Wrap(draft.Content),
		Poll:       draft.Poll,
		Attachment: draft.Attachment,
	}
	optimistic := &message.Message{
		ChannelID:   channelID,
		AuthorID:    d.actor.ID,
		AuthorName:  d.actor.Name,
		Kind:        message.KindPlain,
		Body:        req.Body,
		CachedPlain: draft.Content,
		CreatedAt:   time.Now(),
		Status:      message.StatusPending,
		Poll:        draft.Poll,
		Attachment:  draft.Attachment,
	}
	switch {
	case draft.Poll != nil:
		req.Kind, optimistic.Kind = message.KindPoll, message.KindPoll
	case draft.Attachment != nil:
		req.Kind, optimistic.Kind = message.KindAttachment, message.KindAttachment
	case draft.ReplySnapshot != nil:
		req.Kind, optimistic.Kind = message.KindReply, message.KindReply
		req.ReplyTo, optimistic.ReplyTo = draft.ReplySnapshot, draft.ReplySnapshot
	case draft.ReplyTo != "":
		target, ok := st.Get(draft.ReplyTo)
		if !ok {
			return "", fmt.Errorf("reply target %s not found", draft.ReplyTo)
		}
		// Snapshot the target's currently displayed content; the reference
		// is denormalized and never follows later edits or deletes.
		name := target.AuthorName
		if name == "" {
			name = target.AuthorID
		}
		ref := &message.ReplyRef{
			TargetID:         target.ID,
			TargetAuthorName: name,
			Snippet:          snippet(d.Unwrap(target)),
		}
		req.Kind, optimistic.Kind = message.KindReply, message.KindReply
		req.ReplyTo, optimistic.ReplyTo = ref, ref
	}

	corrID := newCorrelationID()
	optimistic.ID = corrID
	st.Append(optimistic)

	confirmed, err := d.durable.Send(ctx, req)
	if err != nil {
		st.Mutate(corrID, func(m *message.Message) { m.Status = message.StatusFailed })
		return corrID, err
	}

	// The user may have switched channels while the call was in flight; a
	// late response for a stale channel must not leak into the new store.
	d.mu.Lock()
	stale := d.activeID != channelID
	d.mu.Unlock()
	if stale {
		return corrID, common.ErrStaleChannel
	}
	st.ApplyAck(corrID, confirmed)
	return confirmed.ID, nil
}

// Retry re-sends a failed entry as a brand new send with a fresh correlation
// id, then drops the failed one.
func (d *Dispatcher) Retry(ctx context.Context, correlationID string) (string, error) {
	d.mu.Lock()
	st := d.active
	d.mu.Unlock()
	if st == nil {
		return "", fmt.Errorf("no channel selected")
	}
	failed, ok := st.Get(correlationID)
	if !ok || failed.Status != message.StatusFailed {
		return "", fmt.Errorf("no failed entry %s to retry", correlationID)
	}
	st.Remove(correlationID)
	return d.Send(ctx, Draft{
		Content:       failed.CachedPlain,
		ReplySnapshot: failed.ReplyTo,
		Poll:          failed.Poll,
		Attachment:    failed.Attachment,
	})
}

// Discard drops a failed optimistic entry without retrying.
func (d *Dispatcher) Discard(correlationID string) bool {
	d.mu.Lock()
	st := d.active
	d.mu.Unlock()
	if st == nil {
		return false
	}
	m, ok := st.Get(correlationID)
	if !ok || m.Status != message.StatusFailed {
		return false
	}
	return st.Remove(correlationID)
}

// Edit rewrites a message's body. Allowed only while the evaluator still
// grants edit; the window closes as seenBy grows.
func (d *Dispatcher) Edit(ctx context.Context, messageID, content string) error {
	if err := common.ValidateContent(content); err != nil {
		return err
	}
	st, msg, err := d.lookup(messageID)
	if err != nil {
		return err
	}
	if !perm.Capabilities(msg, d.actor).Has(common.ActionEdit) {
		return common.ErrPermissionDenied
	}
	wire := d.codec.Wrap(content)
	st.Mutate(messageID, func(m *message.Message) {
		m.Body = wire
		m.CachedPlain = content
		m.Edited = true
	})
	if _, err := d.durable.Edit(ctx, messageID, wire); err != nil {
		st.Mutate(messageID, func(m *message.Message) { m.Status = message.StatusFailed })
		return err
	}
	return nil
}

// Delete removes the entry optimistically and issues the transport delete.
// On transport failure the entry is not restored; a reselect of the channel
// refetches authoritative history.
func (d *Dispatcher) Delete(ctx context.Context, messageID string) error {
	st, msg, err := d.lookup(messageID)
	if err != nil {
		return err
	}
	if !perm.Capabilities(msg, d.actor).Has(common.ActionDelete) {
		return common.ErrPermissionDenied
	}
	st.Remove(messageID)
	return d.durable.Delete(ctx, messageID)
}

// React toggles the actor's reaction locally and fires the transport call
// best-effort: the local toggle stands even offline, eventual consistency is
// acceptable for this action.
func (d *Dispatcher) React(ctx context.Context, messageID, emoji string) error {
	st, _, err := d.lookup(messageID)
	if err != nil {
		return err
	}
	st.Mutate(messageID, func(m *message.Message) { m.ToggleReaction(emoji, d.actor.ID) })
	if err := d.durable.React(ctx, messageID, emoji); err != nil {
		log.Printf("reaction sync for %s deferred: %v", messageID, err)
	}
	return nil
}

// Vote submits the actor's full selected-option set in one call.
func (d *Dispatcher) Vote(ctx context.Context, messageID string, optionIDs []int) error {
	st, msg, err := d.lookup(messageID)
	if err != nil {
		return err
	}
	if msg.Poll == nil {
		return fmt.Errorf("message %s carries no poll", messageID)
	}
	var recordErr error
	st.Mutate(messageID, func(m *message.Message) {
		recordErr = m.Poll.Record(d.actor.ID, optionIDs)
	})
	if recordErr != nil {
		return recordErr
	}
	return d.durable.Vote(ctx, messageID, optionIDs)
}

// Star flips the starred flag; always permitted.
func (d *Dispatcher) Star(ctx context.Context, messageID string) error {
	st, msg, err := d.lookup(messageID)
	if err != nil {
		return err
	}
	starred := !msg.Starred
	st.Mutate(messageID, func(m *message.Message) { m.Starred = starred })
	return d.durable.Star(ctx, messageID, starred)
}

// Report flags another actor's message. Authors cannot report themselves.
func (d *Dispatcher) Report(ctx context.Context, messageID, reason string) error {
	_, msg, err := d.lookup(messageID)
	if err != nil {
		return err
	}
	if !perm.Capabilities(msg, d.actor).Has(common.ActionReport) {
		return common.ErrPermissionDenied
	}
	return d.durable.Report(ctx, messageID, reason)
}

// MarkSeen records a read receipt from another collaborator. A delivered
// message transitions to Seen; growing seenBy also narrows the author's edit
// window on the next capability evaluation.
func (d *Dispatcher) MarkSeen(messageID, readerID string) bool {
	d.mu.Lock()
	st := d.active
	d.mu.Unlock()
	if st == nil {
		return false
	}
	return st.Mutate(messageID, func(m *message.Message) {
		m.MarkSeenBy(readerID)
		if m.Status == message.StatusDelivered {
			m.Status = message.StatusSeen
		}
	})
}

// NewUploadList starts attachment tracking for the current compose.
func (d *Dispatcher) NewUploadList() *UploadList {
	return NewUploadList(d.durable)
}

// Keystroke feeds the throttled typing emitter for the active channel.
func (d *Dispatcher) Keystroke() {
	d.mu.Lock()
	channelID := d.activeID
	d.mu.Unlock()
	if channelID != "" {
		d.emitter.Keystroke(channelID, d.actor.Name)
	}
}

// Typing exposes the receiver-side tracker.
func (d *Dispatcher) Typing() *presence.Tracker { return d.tracker }

// Capabilities evaluates the actor's allowed actions on a message, fresh on
// every call.
func (d *Dispatcher) Capabilities(msg *message.Message) perm.Set {
	return perm.Capabilities(msg, d.actor)
}

// View returns the active channel's ordered messages. Bodies stay wireform
// in the store; unwrapping happens here, per render.
func (d *Dispatcher) View() []*message.Message {
	d.mu.Lock()
	st := d.active
	d.mu.Unlock()
	if st == nil {
		return nil
	}
	msgs := st.Snapshot()
	for _, m := range msgs {
		m.Body = d.Unwrap(m)
	}
	return msgs
}

// Unwrap resolves a message's displayable content, preferring the local
// plaintext cache for optimistic entries.
func (d *Dispatcher) Unwrap(m *message.Message) string {
	if m.CachedPlain != "" {
		return m.CachedPlain
	}
	return d.codec.Unwrap(m.Body)
}

// ActiveChannel reports the current selection.
func (d *Dispatcher) ActiveChannel() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.activeID
}

func (d *Dispatcher) Close() error {
	close(d.done)
	return d.push.Close()
}

func (d *Dispatcher) lookup(messageID string) (*store.Store, *message.Message, error) {
	d.mu.Lock()
	st := d.active
	d.mu.Unlock()
	if st == nil {
		return nil, nil, fmt.Errorf("no channel selected")
	}
	msg, ok := st.Get(messageID)
	if !ok {
		return nil, nil, fmt.Errorf("message %s not found", messageID)
	}
	return st, msg, nil
}

// newCorrelationID builds a session-unique, monotonically distinguishable
// temporary id for a pending message.
func newCorrelationID() string {
	return fmt.Sprintf("corr-%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
}

// snippet truncates on rune boundaries so multi-byte content never gets cut
// mid-sequence.
func snippet(content string) string {
	const max = 80
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + "…"
}
