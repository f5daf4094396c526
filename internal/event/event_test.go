package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collabchat/internal/message"
)

func TestEncodeDecode_Variants(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
	}{
		{"new message", NewMessage{ChannelID: "c1", Message: message.Message{ID: "m-1", Body: "hi"}}},
		{"edited", Edited{ChannelID: "c1", ID: "m-1", Body: "hi!"}},
		{"deleted", Deleted{ChannelID: "c1", ID: "m-1"}},
		{"typing", Typing{ChannelID: "c1", ActorName: "Ana"}},
		{"join room", RoomControl{Action: TagJoinRoom, ChannelID: "c1"}},
		{"leave room", RoomControl{Action: TagLeaveRoom, ChannelID: "c1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.ev)
			require.NoError(t, err)

			decoded, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, tt.ev.Tag(), decoded.Tag())
			assert.Equal(t, tt.ev.Channel(), decoded.Channel())
			assert.Equal(t, tt.ev, decoded)
		})
	}
}

func TestDecode_UnknownTag(t *testing.T) {
	_, err := Decode([]byte(`{"t":"rename-channel","payload":{}}`))
	assert.ErrorContains(t, err, "unknown event tag")
}

func TestDecode_MalformedEnvelope(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	assert.ErrorContains(t, err, "malformed event envelope")
}
