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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/jddeal/go-dipr/fetch"
	"github.com/jddeal/go-dipr/internal/config"
	"github.com/jddeal/go-dipr/internal/logging"
	"github.com/jddeal/go-dipr/internal/metrics"
	"github.com/jddeal/go-dipr/internal/server"
	"github.com/jddeal/go-dipr/internal/source"
)

var cli struct {
	Config   string `short:"c" long:"config" description:"YAML config file"`
	Addr     string `short:"a" long:"addr" description:"listen address, overrides http.addr"`
	LogLevel string `short:"l" long:"log-level" description:"logging level, overrides log.level" choice:"error" choice:"warn" choice:"info" choice:"debug" choice:"trace"`
}

func main() {
	if _, err := flags.Parse(&cli); err != nil {
		os.Exit(1)
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		logrus.Fatal(err)
	}
	if cli.Addr != "" {
		cfg.HTTP.Addr = cli.Addr
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		logrus.Fatal(err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)
	fetcher, closeFetcher, err := source.New(ctx, cfg.Fetch, m, nil)
	if err != nil {
		logrus.Fatal(err)
	}
	defer closeFetcher()

	srv := server.New(server.OptionsFromConfig(cfg), server.Deps{
		Fetcher: fetcher,
		Status:  fetch.NewStatusChecker(cfg.Fetch.StatusURL, cfg.Fetch.Timeout),
		Metrics: m,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logrus.Error(err)
		}
	case <-ctx.Done():
		logrus.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.Errorf("shutdown: %v", err)
		}
	}
}
