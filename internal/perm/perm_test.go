package perm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"collabchat/internal/common"
	"collabchat/internal/message"
)

func TestCapabilities(t *testing.T) {
	author := common.Actor{ID: "u1", Name: "Ana", Role: common.RoleMember}
	other := common.Actor{ID: "u2", Name: "Ben", Role: common.RoleMember}
	mod := common.Actor{ID: "u3", Name: "Mia", Role: common.RoleModerator}

	tests := []struct {
		name    string
		msg     *message.Message
		actor   common.Actor
		granted []common.Action
		denied  []common.Action
	}{
		{
			name:    "author with seenBy of two keeps edit",
			msg:     &message.Message{AuthorID: "u1", SeenBy: map[string]bool{"u1": true, "u2": true}},
			actor:   author,
			granted: []common.Action{common.ActionEdit, common.ActionDelete, common.ActionReact, common.ActionReply, common.ActionStar},
			denied:  []common.Action{common.ActionReport},
		},
		{
			name:    "seenBy of three revokes edit only",
			msg:     &message.Message{AuthorID: "u1", SeenBy: map[string]bool{"u1": true, "u2": true, "u3": true}},
			actor:   author,
			granted: []common.Action{common.ActionDelete, common.ActionReact, common.ActionReply, common.ActionStar},
			denied:  []common.Action{common.ActionEdit, common.ActionReport},
		},
		{
			name:    "non-author member",
			msg:     &message.Message{AuthorID: "u1"},
			actor:   other,
			granted: []common.Action{common.ActionReact, common.ActionReply, common.ActionStar, common.ActionReport},
			denied:  []common.Action{common.ActionEdit, common.ActionDelete},
		},
		{
			name:    "moderator can delete others' messages",
			msg:     &message.Message{AuthorID: "u1"},
			actor:   mod,
			granted: []common.Action{common.ActionDelete, common.ActionReport},
			denied:  []common.Action{common.ActionEdit},
		},
		{
			name:    "elevated role does not reopen the edit window",
			msg:     &message.Message{AuthorID: "u1", SeenBy: map[string]bool{"u1": true, "u2": true, "u3": true}},
			actor:   mod,
			granted: []common.Action{common.ActionDelete},
			denied:  []common.Action{common.ActionEdit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := Capabilities(tt.msg, tt.actor)
			for _, a := range tt.granted {
				assert.True(t, caps.Has(a), "expected %s granted", a)
			}
			for _, a := range tt.denied {
				assert.False(t, caps.Has(a), "expected %s denied", a)
			}
		})
	}
}

func TestCapabilities_ReEvaluationReflectsSeenByGrowth(t *testing.T) {
	author := common.Actor{ID: "u1", Role: common.RoleMember}
	msg := &message.Message{AuthorID: "u1"}
	msg.MarkSeenBy("u1")
	msg.MarkSeenBy("u2")

	assert.True(t, Capabilities(msg, author).Has(common.ActionEdit))

	msg.MarkSeenBy("u3")
	caps := Capabilities(msg, author)
	assert.False(t, caps.Has(common.ActionEdit))
	// Nothing else changes with the wider audience.
	assert.True(t, caps.Has(common.ActionDelete))
	assert.True(t, caps.Has(common.ActionReply))
}
