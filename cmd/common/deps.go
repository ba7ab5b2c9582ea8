// Package common provides shared utilities for command implementations.
package common

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/vuthanhdatt/baomoi/internal/config"
	"github.com/vuthanhdatt/baomoi/internal/logger"
)

// Viper keys bound to command-line flags.
const (
	KeyConfig        = "config"
	KeyDebug         = "app.debug"
	KeyPostCount     = "harvest.post_count"
	KeyCategory      = "harvest.category"
	KeyOutputRoot    = "harvest.output_root"
	KeyRespectRobots = "harvest.respect_robots_txt"
	KeyRateRequests  = "rate_limit.requests"
)

// CommandDeps holds common dependencies for all commands.
type CommandDeps struct {
	Logger logger.Logger
	Config *config.Config
}

// Validate ensures all required dependencies are present.
func (d CommandDeps) Validate() error {
	if d.Logger == nil {
		return ErrLoggerRequired
	}
	if d.Config == nil {
		return ErrConfigRequired
	}
	return nil
}

// NewCommandDeps loads the configuration, overlays flags bound in v and creates the logger.
func NewCommandDeps(v *viper.Viper) (CommandDeps, error) {
	cfg, err := config.Load(ConfigPath(v))
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}

	ApplyFlags(cfg, v)

	if validateErr := cfg.Validate(); validateErr != nil {
		return CommandDeps{}, validateErr
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	deps := CommandDeps{
		Logger: log,
		Config: cfg,
	}

	if validateErr := deps.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}

// ConfigPath returns the --config flag, CONFIG_PATH, or config.yml when it exists.
// An empty result means no config file.
func ConfigPath(v *viper.Viper) string {
	if path := v.GetString(KeyConfig); path != "" {
		return path
	}

	path := config.GetConfigPath(config.DefaultConfigPath)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && path == config.DefaultConfigPath {
		return ""
	}
	return path
}

// ApplyFlags copies flags that were set on the command line into cfg.
func ApplyFlags(cfg *config.Config, v *viper.Viper) {
	if v.IsSet(KeyDebug) && v.GetBool(KeyDebug) {
		cfg.App.Debug = true
		cfg.Logger.Level = "debug"
	}
	if v.IsSet(KeyPostCount) {
		cfg.Harvest.PostCount = v.GetInt(KeyPostCount)
	}
	if v.IsSet(KeyCategory) {
		cfg.Harvest.Category = v.GetString(KeyCategory)
	}
	if v.IsSet(KeyOutputRoot) {
		cfg.Harvest.OutputRoot = v.GetString(KeyOutputRoot)
	}
	if v.IsSet(KeyRespectRobots) {
		cfg.Harvest.RespectRobotsTxt = v.GetBool(KeyRespectRobots)
	}
	if v.IsSet(KeyRateRequests) {
		cfg.RateLimit.Requests = v.GetInt(KeyRateRequests)
	}
}
