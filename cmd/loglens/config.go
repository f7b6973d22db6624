package main

import (
	"time"

	"github.com/loglens/loglens/internal/model"
)

const (
	defaultBindHost      = "0.0.0.0"
	defaultHTTPPort      = model.DefaultHTTPPort
	defaultLogsDir       = model.DefaultLogsDir
	defaultMaxRecords    = model.DefaultMaxRecords
	defaultTopAddresses  = model.DefaultTopAddresses
	defaultWatchDebounce = 2 * time.Second
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	HTTPAddr      string        `mapstructure:"http-addr"`
	LogsDir       string        `mapstructure:"logs-dir"`
	MaxRecords    int           `mapstructure:"max-records"`
	TopAddresses  int           `mapstructure:"top-addresses"`
	FormatsFile   string        `mapstructure:"formats-file"`
	WatchEnabled  bool          `mapstructure:"watch-enabled"`
	WatchDebounce time.Duration `mapstructure:"watch-debounce"`
	ConfigPath    string        `mapstructure:"-"` // not from config file
}
