package metrics

import (
	"go.uber.org/fx"

	"github.com/polkiloo/gopos/internal/usecase"
	"github.com/polkiloo/gopos/internal/worker"
)

// Module provides metrics and binds them to the observers of the core packages.
var Module = fx.Options(
	fx.Provide(New),
	fx.Provide(
		func(m *Metrics) usecase.SettlementObserver { return m },
		func(m *Metrics) worker.DispatchObserver { return m },
	),
)
