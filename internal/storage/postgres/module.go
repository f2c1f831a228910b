package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/gopos/internal/config"
	"github.com/polkiloo/gopos/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.CatalogRepository { return s.Catalog() },
		func(s *Storage) repository.SettingsRepository { return s.Settings() },
		func(s *Storage) repository.OutboxRepository { return s.Outbox() },
		func(s *Storage) repository.CustomerRepository { return s.Customers() },
		func(s *Storage) repository.LocationRepository { return s.Locations() },
		func(s *Storage) repository.ReportRepository { return s.Reports() },
		func(s *Storage) repository.UnitOfWork { return s },
		func(s *Storage) repository.HealthChecker { return s },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger, p.Config.SettleMaxRetries)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
