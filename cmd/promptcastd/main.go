package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"promptcast/internal/config"
	"promptcast/internal/daemon"
	"promptcast/internal/hub"
	"promptcast/internal/logging"
	"promptcast/internal/match"
	"promptcast/internal/notifications"
	"promptcast/internal/pipeline"
	"promptcast/internal/router"
	"promptcast/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewForDaemon(cfg.LogLevel, cfg.LogFormat, cfg.Paths.LogDir)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		logger.Error("open catalog store", logging.Error(err))
		return
	}

	displayHub := hub.New(logger)
	resolver := match.NewResolver(match.Policy{
		MinSimilarity: cfg.Matching.MinSimilarity,
		SimilarLimit:  cfg.Matching.SimilarLimit,
	})
	transformer := pipeline.NewTransformer(cfg.Pipeline.ExtraBannedPhrases)
	notifier := notifications.NewService(cfg)
	rt := router.New(displayHub, st, resolver, transformer, notifier, logger)

	d, err := daemon.New(cfg, st, displayHub, rt, notifier, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		_ = st.Close()
		return
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", logging.Error(err))
		return
	}

	<-ctx.Done()
	logger.Info("promptcastd shutting down")
}
