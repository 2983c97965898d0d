package di

import (
	"go.uber.org/fx"

	"github.com/campusbites/canteen/internal/adapter/stripegw"
	"github.com/campusbites/canteen/internal/app"
	"github.com/campusbites/canteen/internal/chatbot"
	"github.com/campusbites/canteen/internal/config"
	"github.com/campusbites/canteen/internal/logger"
	"github.com/campusbites/canteen/internal/notify"
	"github.com/campusbites/canteen/internal/pkg/auth"
	"github.com/campusbites/canteen/internal/pkg/otp"
	"github.com/campusbites/canteen/internal/server/http/handlers"
	"github.com/campusbites/canteen/internal/server/http/router"
	"github.com/campusbites/canteen/internal/storage/postgres"
	"github.com/campusbites/canteen/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		otp.Module,
		postgres.Module,
		stripegw.Module,
		notify.Module,
		chatbot.Module,
		usecase.Module,
		fx.Provide(func(facade *app.CanteenFacade) handlers.CanteenFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
