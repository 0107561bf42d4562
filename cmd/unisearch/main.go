// Command unisearch serves the unified search API and hosts its admin tools.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/unisearch/internal/config"
	logpkg "github.com/kailas-cloud/unisearch/internal/logger"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	env        string
	configPath string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "unisearch",
		Short:         "Unified relevance-ranked search over servers, resources, wiki and posts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&flags.env, "env", config.GetEnv(), "Environment: local, dev, docker, prod")
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file (overrides --env lookup)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override logging.level")

	root.AddCommand(
		newServeCmd(flags),
		newDiagnoseCmd(flags),
		newMigrateCmd(flags),
		newVersionCmd(),
	)
	return root
}

// load reads the config and builds the logger for a subcommand.
func (f *globalFlags) load() (config.Config, *zap.Logger, error) {
	var (
		cfg config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		cfg, err = config.Load(f.env)
	}
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.Logging.Level
	if f.logLevel != "" {
		level = f.logLevel
	}
	logger, err := logpkg.NewLogger(f.env, level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, logger, nil
}
