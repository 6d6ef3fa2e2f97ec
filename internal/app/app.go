package app

import (
	"github.com/carousell/ct-go/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/nguyentranbao-ct/shop-bot/internal/config"
	"github.com/nguyentranbao-ct/shop-bot/internal/kafka"
	"github.com/nguyentranbao-ct/shop-bot/internal/repo/liqpay"
	"github.com/nguyentranbao-ct/shop-bot/internal/repo/mongodb"
	"github.com/nguyentranbao-ct/shop-bot/internal/repo/telegram"
	"github.com/nguyentranbao-ct/shop-bot/internal/server"
	"github.com/nguyentranbao-ct/shop-bot/internal/usecase"
)

func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()
	log.Debugw("config loaded", log.Reflect("config", conf))
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			newMongoDB,

			server.NewController,

			usecase.NewBotUsecase,
			usecase.NewCartUsecase,
			usecase.NewCheckoutUsecase,
			usecase.NewSessionManager,

			mongodb.NewCategoryRepository,
			mongodb.NewProductRepository,
			mongodb.NewCartRepository,
			mongodb.NewOrderRepository,

			telegram.NewClient,
			liqpay.NewProvider,
			kafka.NewOrderEventPublisher,
		),
		fx.Supply(conf),
		fx.Invoke(EnsureIndexes),
		fx.Invoke(StartSessionJanitor),
		fx.Invoke(StopOrderEventPublisher),
		fx.Invoke(funcs...),
	)
}
