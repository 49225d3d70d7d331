package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kuanb/gogeojson/config"
	"kuanb/gogeojson/logger"
	"kuanb/gogeojson/osm"
	"kuanb/gogeojson/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile      string        `short:"c" long:"config"           env:"CONFIG_FILE"    description:"Path to configuration file"`
	PBF             string        `short:"f" long:"pbf"              env:"PBF_FILE"       description:"OSM PBF extract to load; overrides the config file"`
	Listen          string        `short:"a" long:"listen"           env:"LISTEN_ADDRESS" description:"Address to listen on; overrides the config file"`
	MetricsInterval time.Duration `long:"metrics-interval" env:"METRICS_INTERVAL" description:"Interval for runtime metrics logging, 0 disables" default:"30s"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			opts.Logger.Setup("")
			log.Fatal().Err(err).Str("path", opts.ConfigFile).Msg("Failed to load configuration")
		}
	}
	opts.Logger.Setup(cfg.LogLevel)
	if opts.PBF != "" {
		cfg.PBF = opts.PBF
	}
	if opts.Listen != "" {
		cfg.Listen = opts.Listen
	}

	log.Info().Str("pbf", cfg.PBF).Msg("Loading graph")
	graph, err := osm.LoadFile(cfg.PBF)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load graph")
	}
	log.Info().
		Int("nodes", len(graph.Nodes)).
		Int("ways", len(graph.Ways)).
		Msg("Loaded graph")

	srv, err := server.New(cfg, graph)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.MetricsInterval > 0 {
		server.StartMetricsLogger(ctx, opts.MetricsInterval)
	}

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Shutdown failed")
		}
	}()

	log.Info().
		Str("addr", cfg.Listen).
		Bool("validate_schema", cfg.ValidateSchema).
		Str("envelope_form", cfg.Codec.EnvelopeForm.String()).
		Msg("Web server started")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
