package di

import (
	"time"

	"collabchat/internal/codec"
	"collabchat/internal/common"
	"collabchat/internal/config"
	"collabchat/internal/dispatch"
	"collabchat/internal/transport"
)

// Application bundles the wired messaging client.
type Application struct {
	Config     *config.Config
	Durable    transport.Durable
	Push       transport.Push
	Dispatcher *dispatch.Dispatcher
}

// Token is the session credential handed over by the auth collaborator.
type Token string

func ProvideDurable(cfg *config.Config, token Token) transport.Durable {
	return transport.NewHTTPDurable(cfg.Client.APIBaseURL, string(token))
}

func ProvidePush(cfg *config.Config, token Token) (transport.Push, error) {
	return transport.DialPush(cfg.Client.WebsocketURL, string(token))
}

// ProvideCodec picks the body transform: sealed when the channel has secret
// material configured, the legacy digest form otherwise.
func ProvideCodec(cfg *config.Config) codec.Codec {
	if cfg.Client.ChannelSecret != "" {
		return codec.NewAEADCodec([]byte(cfg.Client.ChannelSecret))
	}
	return codec.NewDigestCodec()
}

func ProvideDispatcher(cfg *config.Config, durable transport.Durable, push transport.Push, c codec.Codec, actor common.Actor) *dispatch.Dispatcher {
	throttle := time.Duration(cfg.Presence.ThrottleSeconds) * time.Second
	return dispatch.New(durable, push, c, actor, throttle)
}
