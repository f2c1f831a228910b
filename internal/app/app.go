package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/gopos/internal/adapter/notify"
	"github.com/polkiloo/gopos/internal/config"
	"github.com/polkiloo/gopos/internal/domain/repository"
	"github.com/polkiloo/gopos/internal/server/http/handlers"
	"github.com/polkiloo/gopos/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newPosFacade,
		func(f *PosFacade) handlers.PosFacade { return f },
		newHTTPServer,
		newOutboxDispatcher,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type dispatcherParams struct {
	fx.In

	Outbox    repository.OutboxRepository
	Publisher notify.Publisher
	Observer  worker.DispatchObserver `optional:"true"`
	Config    *config.Config
	Logger    *slog.Logger
}

func newOutboxDispatcher(p dispatcherParams) *worker.OutboxDispatcher {
	return worker.NewOutboxDispatcher(
		p.Outbox,
		p.Publisher,
		p.Observer,
		p.Config.OutboxPollInterval,
		p.Config.OutboxBatchSize,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.OutboxDispatcher
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting gopos", slog.String("addr", p.Server.Addr))
			// The start context expires once startup completes.
			p.Dispatcher.Start(context.WithoutCancel(ctx))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Dispatcher.Stop()
			p.Logger.Info("gopos stopped")
			return nil
		},
	})
}
