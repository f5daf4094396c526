// Package perm decides which actions an actor may take on a message. The
// evaluator is a pure function and must be re-run on every render: seenBy and
// role both change over a message's lifetime, so a cached result goes stale.
//
// These checks are advisory on the client. The backend enforces the same
// rules and does not trust client-side gating.
package perm

import (
	"collabchat/internal/common"
	"collabchat/internal/message"
)

// editSeenLimit caps how far a message may have propagated before editing is
// disabled. Two viewers means the original pair; beyond that the content has
// been read by a wider audience and silent alteration is off the table.
const editSeenLimit = 2

type Set map[common.Action]bool

func (s Set) Has(action common.Action) bool { return s[action] }

// Capabilities returns the actions the actor may perform on the message.
func Capabilities(msg *message.Message, actor common.Actor) Set {
	caps := Set{
		common.ActionReact: true,
		common.ActionReply: true,
		common.ActionStar:  true,
	}
	authored := msg.AuthorID == actor.ID
	if authored || actor.Role.Elevated() {
		caps[common.ActionDelete] = true
	}
	if authored && msg.SeenCount() <= editSeenLimit {
		caps[common.ActionEdit] = true
	}
	if !authored {
		caps[common.ActionReport] = true
	}
	return caps
}
