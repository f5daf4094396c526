// Package presence carries the ephemeral typing signal. Nothing here is
// persisted and nothing touches the message store: the signal is a
// fire-and-forget broadcast with receiver-local expiry.
package presence

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clearAfter is how long a typing indicator stays visible with no further
// signal. The wire event carries no duration; every receiver runs its own
// timer.
const clearAfter = 2 * time.Second

// TypingSink is where the emitter sends signals; the push transport
// satisfies it.
type TypingSink interface {
	EmitTyping(channelID, actorName string) error
}

// Emitter throttles keystroke-driven typing signals so a fast typist does
// not flood the socket.
type Emitter struct {
	sink    TypingSink
	limiter *rate.Limiter
}

// NewEmitter builds an emitter that fires at most once per interval with a
// burst of one: the first keystroke goes out immediately, the rest of the
// burst is absorbed. A zero interval falls back to one second.
func NewEmitter(sink TypingSink, interval time.Duration) *Emitter {
	if interval <= 0 {
		interval = time.Second
	}
	return &Emitter{sink: sink, limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Keystroke emits a typing signal if the throttle window allows it.
func (e *Emitter) Keystroke(channelID, actorName string) {
	if !e.limiter.Allow() {
		return
	}
	_ = e.sink.EmitTyping(channelID, actorName)
}

// Tracker is the receiving side: it records who is typing and clears each
// actor after a fixed quiet window.
type Tracker struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	active map[string]bool

	// onChange, when set, fires after every state transition with the
	// current snapshot. Used by the terminal client to redraw.
	onChange func([]string)

	// now-independent clock hook for tests
	clearAfter time.Duration
}

func NewTracker() *Tracker {
	return &Tracker{
		timers:     make(map[string]*time.Timer),
		active:     make(map[string]bool),
		clearAfter: clearAfter,
	}
}

func (t *Tracker) OnChange(fn func([]string)) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

// Signal records a typing event for the actor and restarts their clear
// timer.
func (t *Tracker) Signal(actorName string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[actorName]; ok {
		timer.Stop()
	}
	changed := !t.active[actorName]
	t.active[actorName] = true
	t.timers[actorName] = time.AfterFunc(t.clearAfter, func() {
		t.clear(actorName)
	})
	if changed {
		t.notifyLocked()
	}
}

func (t *Tracker) clear(actorName string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active[actorName] {
		return
	}
	delete(t.active, actorName)
	delete(t.timers, actorName)
	t.notifyLocked()
}

// Typing returns the actors currently typing.
func (t *Tracker) Typing() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// Reset drops all state, used on channel switch.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for name, timer := range t.timers {
		timer.Stop()
		delete(t.timers, name)
	}
	t.active = make(map[string]bool)
}

func (t *Tracker) snapshotLocked() []string {
	names := make([]string, 0, len(t.active))
	for name := range t.active {
		names = append(names, name)
	}
	return names
}

func (t *Tracker) notifyLocked() {
	if t.onChange != nil {
		t.onChange(t.snapshotLocked())
	}
}
