package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/One-com/gone/hugorm"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
)

// Config holds the settings the serve and collect CLI verbs run under.
type Config struct {
	ListenAddr    string
	DataDir       string
	PollInterval  time.Duration
	FlushInterval time.Duration
	MQTTServer    string
	MQTTTopics    []string
	HTTPPollURLs  []string
}

const envPrefix = "PVVIEW"

var defaults = map[string]interface{}{
	"listen_addr":    ":8080",
	"data_dir":       ".",
	"poll_interval":  "5s",
	"flush_interval": "10s",
	"mqtt_server":    "",
	"mqtt_topics":    []string{},
	"http_poll_urls": []string{},
}

// Load builds a Config by layering, from lowest to highest precedence:
// compiled-in defaults, a config file at path (YAML or TOML, by extension;
// skipped when path is empty), PVVIEW_-prefixed environment variables, and
// any flags explicitly set on flags. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	h := hugorm.New(hugorm.EnvPrefix(envPrefix))

	for key, value := range defaults {
		h.SetDefault(key, value)
	}
	for key := range defaults {
		if err := h.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config: binding env for %q: %w", key, err)
		}
	}

	if path != "" {
		h.AddConfigFile(formatFor(path), path)
		if err := h.LoadConfig(); err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", path, err)
		}
	}

	applyFlagOverrides(h, flags)

	cfg, err := build(h)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// formatFor picks the parser hugorm.AddConfigFile should use from path's
// extension, defaulting to yaml for anything unrecognized.
func formatFor(path string) string {
	switch {
	case strings.HasSuffix(path, ".toml"):
		return "toml"
	case strings.HasSuffix(path, ".json"):
		return "json"
	default:
		return "yaml"
	}
}

// applyFlagOverrides copies every flag the caller explicitly set on the
// command line into h's override register, which hugorm's precedence rules
// rank above config file and environment values.
func applyFlagOverrides(h *hugorm.Hugorm, flags *pflag.FlagSet) {
	if flags == nil {
		return
	}
	flags.Visit(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		h.Set(key, f.Value.String())
	})
}

func build(h *hugorm.Hugorm) (*Config, error) {
	pollInterval, err := cast.ToDurationE(h.Get("poll_interval"))
	if err != nil {
		return nil, fmt.Errorf("config: poll_interval: %w", err)
	}
	flushInterval, err := cast.ToDurationE(h.Get("flush_interval"))
	if err != nil {
		return nil, fmt.Errorf("config: flush_interval: %w", err)
	}

	return &Config{
		ListenAddr:    cast.ToString(h.Get("listen_addr")),
		DataDir:       cast.ToString(h.Get("data_dir")),
		PollInterval:  pollInterval,
		FlushInterval: flushInterval,
		MQTTServer:    cast.ToString(h.Get("mqtt_server")),
		MQTTTopics:    cast.ToStringSlice(h.Get("mqtt_topics")),
		HTTPPollURLs:  cast.ToStringSlice(h.Get("http_poll_urls")),
	}, nil
}
