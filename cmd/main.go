package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventattend/cmd/buildCFG"
	"eventattend/internal/api/api"
	rabbitReader "eventattend/internal/consumerWorker"
	"eventattend/internal/rabbit"
	"eventattend/internal/repo"
	"eventattend/internal/service"

	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/zlog"
)

func main() {
	zlog.Init()
	log := zlog.Logger

	cfg := config.New()
	if err := cfg.Load("config.yaml", "", "'"); err != nil {
		log.Fatal().Msgf("failed to load configuration: %v", err)
	}
	serverCfg := buildCFG.BuildServerConfig(cfg, &log)
	storeCfg := buildCFG.BuildStoreConfig(cfg, &log)

	db, err := repo.Open(storeCfg.Path)
	if err != nil {
		log.Fatal().Msgf("failed to open store: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Msgf("store ping failed: %v", err)
	}
	log.Info().Str("path", storeCfg.Path).Msg("store opened")

	repositories, err := repo.New(db, &log)
	if err != nil {
		log.Fatal().Msgf("failed to initialize repositories: %v", err)
	}
	if err := repositories.Bootstrap(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap schema")
	}
	log.Info().Msg("schema ready")

	rabbitCfg := buildCFG.BuildRabbitConfig(cfg, &log)

	var rmq *rabbit.Client
	var reader *rabbitReader.Reader
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	if rabbitCfg.URL != "" {
		rmq, err = rabbit.NewRabbit(rabbitCfg.URL, rabbitCfg.Exchange, rabbitCfg.Queue)
		if err != nil {
			log.Fatal().Msgf("failed to connect to RabbitMQ: %v", err)
		}
		defer rmq.Close()

		smtpCfg := buildCFG.BuildSMTPConfig(cfg, &log)
		reader = rabbitReader.NewReader(rmq, smtpCfg)
		go reader.Start(workerCtx)
		log.Info().Msg("attendance notification worker started")
	}

	serviceInstance := service.NewService(repositories, &log, rmq)
	app := api.NewRouters(&api.Routers{Service: serviceInstance})

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info().Msgf("starting server on %s", serverCfg.Port)
		if err := app.Run(":" + serverCfg.Port); err != nil {
			serverErrChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-signalChan:
		log.Info().Msgf("received signal %s, initiating shutdown", sig)
	case err := <-serverErrChan:
		log.Error().Msgf("server error: %v", err)
	}

	cancelWorkers()
	if reader != nil {
		reader.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if closer, ok := interface{}(app).(interface{ Close(context.Context) error }); ok {
		if err := closer.Close(shutdownCtx); err != nil {
			log.Error().Msgf("error shutting down server: %v", err)
		}
	}

	log.Info().Msg("shutdown complete")
}
