package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/veilledger/veilsync/internal/feed"
	"github.com/veilledger/veilsync/internal/metrics"
	"github.com/veilledger/veilsync/internal/nodeclient"
	"github.com/veilledger/veilsync/internal/pool"
	"github.com/veilledger/veilsync/internal/synchronizer"
	"github.com/veilledger/veilsync/internal/transport"
)

var config struct {
	Addr    string `long:"addr" env:"SYNCD_ADDR" description:"http listen addr" default:":8000"`
	NodeURL string `long:"node-url" env:"SYNCD_NODE_URL" description:"block source node url" default:"http://localhost:8080"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	node, err := nodeclient.NewClient(config.NodeURL, logger)
	if err != nil {
		logger.Fatal("Build node client", zap.Error(err))
	}

	blockFeed, err := feed.NewPollingFeed(node, metrics.NewFeed(), logger)
	if err != nil {
		logger.Fatal("Build block feed", zap.Error(err))
	}

	engine, err := synchronizer.New(blockFeed, pool.NewMemPool(), metrics.NewSynchronizer(), logger)
	if err != nil {
		logger.Fatal("Build synchronizer", zap.Error(err))
	}

	caughtUp, err := engine.Start(ctx)
	if err != nil {
		logger.Fatal("Start synchronizer", zap.Error(err))
	}
	go func() {
		select {
		case <-caughtUp:
			logger.Info("Synchronizer caught up", zap.Uint64("block", engine.Status().SyncedToBlock))
		case <-ctx.Done():
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/v1/", transport.NewHandler(engine, logger))
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              config.Addr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := engine.Stop(shutdownCtx); err != nil {
			logger.Error("Synchronizer stopped with error", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}
