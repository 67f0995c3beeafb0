package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/yieldfarm/app/bootstrap"
	"github.com/x-xyz/yieldfarm/base/ctx"
	"github.com/x-xyz/yieldfarm/base/log"
	bValidator "github.com/x-xyz/yieldfarm/base/validator"
	"github.com/x-xyz/yieldfarm/domain/farm"
	mmiddleware "github.com/x-xyz/yieldfarm/middleware"
	"github.com/x-xyz/yieldfarm/service/notify"
	farm_delivery "github.com/x-xyz/yieldfarm/stores/farm/delivery/http"
	hc_delivery "github.com/x-xyz/yieldfarm/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/yieldfarm/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/yieldfarm/stores/healthcheck/usecase"
)

var configFile = pflag.String("config", bootstrap.DefaultConfigFile, "path of the yaml config")

func init() {
	pflag.Parse()
	if err := bootstrap.LoadConfig(*configFile); err != nil {
		panic(err)
	}
}

func main() {
	defer log.Sync()

	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware(viper.GetDuration("context.timeout"))
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// notices of one request are collected from its context
	stack, err := bootstrap.Build(context, bootstrap.Options{
		Sinks: []farm.NotificationSink{notify.NewContextSink()},
	})
	if err != nil {
		context.WithField("err", err).Panic("bootstrap.Build failed")
	}

	mmiddleware.SetupCache(stack.CacheProvider)

	var pinger hc_repo.Pinger
	if stack.Mongo != nil {
		pinger = stack.Mongo
	}
	hc := hc_usecase.New(hc_repo.New(pinger, stack.Redis))

	hc_delivery.New(e, hc)
	farm_delivery.New(e, stack.Positions, viper.GetBool("cache.activities"))

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
	stack.Close(ctx)
}
