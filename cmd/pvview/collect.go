package main

import (
	"context"
	"strings"

	"github.com/One-com/gone/log"
	"github.com/spf13/pflag"

	"github.com/jovermann/pvview/config"
	"github.com/jovermann/pvview/ingest"
)

func runCollect(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("collect", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to the engine config file (YAML or TOML)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		return err
	}

	logger := log.Default()
	batcher := ingest.NewBatcher(cfg.DataDir, cfg.FlushInterval, logger)

	samples := make(chan ingest.Sample, 256)
	var pollers []*ingest.HTTPPoller
	for _, url := range cfg.HTTPPollURLs {
		prefix := strings.TrimSuffix(strings.TrimPrefix(url, "http://"), "/")
		pollers = append(pollers, ingest.NewHTTPPoller(url, prefix, cfg.PollInterval))
	}

	for _, p := range pollers {
		p := p
		go func() {
			if err := p.Run(ctx, samples); err != nil && ctx.Err() == nil {
				logger.ERROR("pvview collect: poller stopped", "url", p.URL, "error", err.Error())
			}
		}()
	}

	go func() {
		for {
			select {
			case s := <-samples:
				batcher.Add(s)
			case <-ctx.Done():
				return
			}
		}
	}()

	logger.INFO("pvview collect starting", "dataDir", cfg.DataDir, "pollers", len(pollers))
	batcher.Run(ctx)
	return batcher.Close()
}
