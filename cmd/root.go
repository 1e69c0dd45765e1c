// Package cmd wires the taskmanager command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"task-manager/config"
	"task-manager/logging"
	"task-manager/store"
)

var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "Create, list and delete tasks",
	Long: `taskmanager serves a small task REST API backed by SQLite, MongoDB or
Google Tasks, and ships a terminal client for it.`,
	SilenceUsage: true,
}

// configErr holds a config file read failure until a command can report it.
var configErr error

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/taskmanager/taskmanager.yaml)")
	rootCmd.PersistentFlags().String("store", "", "store URI: a SQLite path, mongodb://..., or googletasks://<list>")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (auto, text, json)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("store.uri", rootCmd.PersistentFlags().Lookup("store"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())
	configErr = nil

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(config.AppName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			configErr = fmt.Errorf("read config: %w", err)
		}
	}
}

// loadConfig decodes the global viper state.
func loadConfig() (*config.Config, error) {
	if configErr != nil {
		return nil, configErr
	}
	return config.Load(viper.GetViper())
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
}

func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (store.Store, error) {
	kind := store.Kind(cfg.Store.URI)
	log.Debug("opening store", "kind", kind)

	st, err := store.Open(ctx, store.Options{
		URI:            cfg.Store.URI,
		Database:       cfg.Store.Database,
		CredentialsDir: cfg.Store.CredentialsDir,
		Timeout:        cfg.Store.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s store: %w", kind, err)
	}
	log.Info("store connected", "kind", kind)
	return st, nil
}
