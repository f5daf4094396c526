//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"collabchat/internal/common"
	"collabchat/internal/config"
)

func InitializeClient(token Token, actor common.Actor) (*Application, error) {
	wire.Build(
		config.LoadConfig,
		ProvideDurable,
		ProvidePush,
		ProvideCodec,
		ProvideDispatcher,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
