package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dropDatabas3/eventeye/internal/cache"
	"github.com/dropDatabas3/eventeye/internal/config"
	"github.com/dropDatabas3/eventeye/internal/delivery"
	"github.com/dropDatabas3/eventeye/internal/email"
	"github.com/dropDatabas3/eventeye/internal/events"
	"github.com/dropDatabas3/eventeye/internal/format"
	"github.com/dropDatabas3/eventeye/internal/http/router"
	"github.com/dropDatabas3/eventeye/internal/observability/logger"
	fsstore "github.com/dropDatabas3/eventeye/internal/store/fs"
)

const version = "0.3.0"

func main() {
	// .env es opcional: en prod todo llega por entorno
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.L().Fatal("config load failed", logger.Err(err))
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "eventeye",
		Version:     version,
	})
	defer func() { _ = logger.Sync() }()

	log := logger.L()

	st := fsstore.New(cfg.Storage.DataDir)
	sender := email.FromConfig(cfg.Sender)
	artifacts := cache.New(30 * time.Minute)

	var remote format.Formatter
	if cfg.Formatter.APIKey != "" {
		remote = format.NewRemote(cfg.Formatter)
	}
	formatter := format.NewService(remote)

	eventsSvc := events.NewService(st, formatter)
	deliverySvc, err := delivery.NewService(delivery.Config{
		Store:             st,
		Sender:            sender,
		From:              cfg.Sender.From,
		SendDelay:         cfg.Delivery.SendDelay,
		RenderConcurrency: cfg.Delivery.RenderConcurrency,
		Artifacts:         artifacts,
	})
	if err != nil {
		log.Fatal("delivery wiring failed", logger.Err(err))
	}

	handler := router.New(router.Deps{
		Store:     st,
		Events:    eventsSvc,
		Delivery:  deliverySvc,
		Artifacts: artifacts,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second, // los envíos individuales throttlean entre mails
	}

	go func() {
		log.Info("server listening",
			logger.String("addr", cfg.Server.Addr),
			logger.String("sender", cfg.Sender.Driver),
			logger.String("data_dir", cfg.Storage.DataDir),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", logger.Err(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", logger.Err(err))
	}
}
