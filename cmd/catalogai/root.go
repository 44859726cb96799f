package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogai/internal/config"
	logpkg "github.com/kailas-cloud/catalogai/internal/logger"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	env      string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "catalogai",
		Short: "AI product query interpretation and catalog search",
		Long: `catalogai turns free-text product queries into structured filters with an
LLM, falls back to bilingual synonym tables when the model is unavailable,
and searches the product catalog with both.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.env, "env", "e", config.GetEnv(), "config environment (reads config/<env>.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level: debug, info, warn, error")

	cmd.AddCommand(
		newServeCmd(opts),
		newInterpretCmd(opts),
		newSearchCmd(opts),
		newValidateCmd(opts),
		newSeedCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// load reads the config and builds a logger. loggerEnv selects the logger
// flavour; one-shot commands pass "cli" to keep stdout clean.
func (o *globalOptions) load(loggerEnv string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.env)
	if err != nil {
		return config.Config{}, nil, err
	}

	level := cfg.Logging.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	logger, err := logpkg.NewLogger(loggerEnv, level)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}
