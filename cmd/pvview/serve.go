package main

import (
	"context"

	"github.com/One-com/gone/log"
	"github.com/spf13/pflag"

	"github.com/jovermann/pvview/cache"
	"github.com/jovermann/pvview/config"
	"github.com/jovermann/pvview/configstore"
	"github.com/jovermann/pvview/httpapi"
	"github.com/jovermann/pvview/query"
)

func runServe(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to the engine config file (YAML or TOML)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		return err
	}

	store, err := configstore.New(cfg.DataDir)
	if err != nil {
		return err
	}

	logger := log.Default()
	engine := query.NewEngine(cfg.DataDir, cache.New())
	srv := httpapi.NewServer(engine, store, logger)

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	logger.INFO("pvview serve starting", "addr", cfg.ListenAddr, "dataDir", cfg.DataDir)
	return srv.Serve(cfg.ListenAddr)
}
