//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/curve/internal/core/curve"
	"github.com/zeusync/curve/internal/scenario"
)

func InitializeRunner(config curve.Config) *scenario.Runner {
	wire.Build(ProviderSet)
	return nil
}
