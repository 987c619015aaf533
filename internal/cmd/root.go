package cmd

import (
	"errors"
	"fmt"
	"os"

	"chatbot/config"
	"chatbot/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is the state shared by subcommands once the root pre-run has loaded it.
type app struct {
	cfg    config.Config
	logger *zap.Logger

	dbDriver string
	dbURL    string
	logLevel string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "chatbot",
		Short: "A keyword chatbot that logs every exchange",
		Long: `chatbot answers short messages from a fixed, ordered table of keyword rules
and records every exchange in a SQLite (default) or PostgreSQL store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations["skipConfig"] == "true" {
				return nil
			}
			return a.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.dbDriver, "db-driver", "", "database driver: sqlite or postgres (overrides DATABASE_DRIVER)")
	pf.StringVar(&a.dbURL, "db-url", "", "database file path or DSN (overrides DATABASE_URL)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(
		newServeCmd(a),
		newAskCmd(),
		newHistoryCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// load reads .env and the environment, applies flag overrides and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	dotenvErr := config.LoadDotEnv()
	if dotenvErr != nil && !errors.Is(dotenvErr, os.ErrNotExist) {
		return dotenvErr
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("db-driver") {
		cfg.DatabaseDriver = a.dbDriver
	}
	if flags.Changed("db-url") {
		cfg.DatabaseUrl = a.dbURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.HTTPAddr, _ = flags.GetString("addr")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	if dotenvErr != nil {
		logger.Debug(".env file not found, using process environment only")
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
