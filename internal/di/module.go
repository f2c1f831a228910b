package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/gopos/internal/adapter/notify"
	"github.com/polkiloo/gopos/internal/app"
	"github.com/polkiloo/gopos/internal/cart"
	"github.com/polkiloo/gopos/internal/config"
	"github.com/polkiloo/gopos/internal/logger"
	"github.com/polkiloo/gopos/internal/metrics"
	"github.com/polkiloo/gopos/internal/pkg/auth"
	"github.com/polkiloo/gopos/internal/server/http/router"
	"github.com/polkiloo/gopos/internal/storage/postgres"
	"github.com/polkiloo/gopos/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		notify.Module,
		metrics.Module,
		cart.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
