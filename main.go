package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/plantnet/plantnet-server/config"
	"github.com/plantnet/plantnet-server/database"
	"github.com/plantnet/plantnet-server/handlers"
	customMiddleware "github.com/plantnet/plantnet-server/middleware"
	"github.com/plantnet/plantnet-server/routes"
	"github.com/plantnet/plantnet-server/utils"
)

func main() {
	fx.New(
		fx.Provide(
			config.New,
			newLogger,
			utils.NewMetrics,
			newStore,
			newTokenService,
			newMailer,
			newNotifier,
			newPaymentProcessor,
			newAuth,
			handlers.NewHandler,
			newServer,
		),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		fx.Invoke(startServer),
	).Run()
}

func newLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = logger.Sync()
			return nil
		},
	})
	return logger, nil
}

func newStore(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (database.Store, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("using in-memory store, data is lost on restart")
		return database.NewMemoryStore(), nil
	}

	store, err := database.ConnectDB(context.Background(), cfg.MongoURI, cfg.DBName, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Disconnect(ctx)
		},
	})
	return store, nil
}

func newTokenService(cfg *config.Config) (*utils.TokenService, error) {
	return utils.NewTokenService(cfg.AccessTokenSecret, config.TokenTTL)
}

func newAuth(tokens *utils.TokenService, store database.Store, logger *zap.Logger) *customMiddleware.Auth {
	return customMiddleware.NewAuth(tokens, store, logger)
}

func newMailer(cfg *config.Config, logger *zap.Logger) utils.Mailer {
	if !cfg.MailEnabled() {
		logger.Warn("SMTP relay not configured, notifications are only logged")
		return utils.LogMailer{Logger: logger}
	}
	return utils.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
}

func newNotifier(lc fx.Lifecycle, cfg *config.Config, mailer utils.Mailer, metrics *utils.Metrics, logger *zap.Logger) handlers.Notifications {
	n := utils.NewNotifier(mailer, cfg.NotifyQueueSize, logger.Named("notifier"), metrics.Notifications)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			n.Start()
			return nil
		},
		OnStop: n.Stop,
	})
	return n
}

func newPaymentProcessor(cfg *config.Config, logger *zap.Logger) (utils.PaymentProcessor, error) {
	if cfg.StripeSecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY not set, payment intents are disabled")
		return utils.UnconfiguredProcessor{}, nil
	}
	return utils.NewStripeProcessor(cfg.StripeSecretKey)
}

func newServer(cfg *config.Config, h *handlers.Handler, auth *customMiddleware.Auth, metrics *utils.Metrics, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(logger)

	routes.SetupMiddleware(e, cfg.AllowedOrigins(), logger, metrics)
	routes.SetupRoutes(e, h, auth, metrics)
	return e
}

func startServer(lc fx.Lifecycle, cfg *config.Config, e *echo.Echo, logger *zap.Logger) {
	addr := ":" + strconv.Itoa(cfg.Port)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				logger.Info("plantNet server listening", zap.String("addr", addr))
				if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
					logger.Fatal("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return e.Shutdown(ctx)
		},
	})
}
