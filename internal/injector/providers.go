package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/curve/internal/core/curve"
	"github.com/zeusync/curve/internal/core/observability/log"
	"github.com/zeusync/curve/internal/scenario"
)

var ProviderSet = wire.NewSet(ProvideLogger, scenario.NewRunner)

// ProvideLogger builds the process logger at the configured level.
func ProvideLogger(config curve.Config) log.Log {
	return log.New(config.Level())
}
