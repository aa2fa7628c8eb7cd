package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pbaille/worklog/internal/config"
	"github.com/pbaille/worklog/internal/domain"
	"github.com/pbaille/worklog/internal/filter"
	"github.com/pbaille/worklog/internal/logging"
	"github.com/pbaille/worklog/internal/store"
)

var errNoWorkspace = errors.New("not in a worklog space, please initialize a worklog first (see 'worklog init')")

// app carries the state shared by the commands of one root command
type app struct {
	configPath string
	metaDir    string
	editor     string
	verbose    bool

	cfg    config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "worklog",
		Short:        "Keep a searchable log of your work",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default .worklog/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.metaDir, "dir", "", "worklog metadata directory (default .worklog)")
	rootCmd.PersistentFlags().StringVar(&a.editor, "editor", "", "editor command (default $EDITOR)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log skipped lines and files")

	rootCmd.AddCommand(initCmd(a))
	rootCmd.AddCommand(newCmd(a))
	rootCmd.AddCommand(editCmd(a))
	rootCmd.AddCommand(viewCmd(a))
	rootCmd.AddCommand(rmCmd(a))
	rootCmd.AddCommand(listCmd(a))
	rootCmd.AddCommand(brokenCmd(a))
	rootCmd.AddCommand(tagCmd(a))
	rootCmd.AddCommand(searchCmd(a))
	rootCmd.AddCommand(yearlyCmd(a))
	rootCmd.AddCommand(statsCmd(a))
	rootCmd.AddCommand(reindexCmd(a))
	rootCmd.AddCommand(repCmd(a))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	a.logger = logging.New(cmd.ErrOrStderr(), a.verbose)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg.Overlay(config.Config{MetaDir: a.metaDir, Editor: a.editor})

	a.logger.Debug("config loaded", "meta_dir", a.cfg.MetaDir, "logs_dir", a.cfg.LogsDir)
	return nil
}

func (a *app) getStorage() (*store.Storage, error) {
	if !store.IsWorkspace(a.cfg) {
		return nil, errNoWorkspace
	}
	return store.Open(a.cfg, a.logger), nil
}

// getLogs builds the index and returns the logs accepted by keep, newest first
func (a *app) getLogs(keep filter.Predicate) ([]domain.Log, error) {
	if !store.IsWorkspace(a.cfg) {
		return nil, errNoWorkspace
	}
	idx, err := store.BuildIndex(a.cfg.LogsDir, a.logger)
	if err != nil {
		return nil, err
	}
	return filter.Apply(idx.Logs, keep), nil
}

func initCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a worklog space",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.Init(a.cfg); err != nil {
				return fmt.Errorf("failed to setup worklog space: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized worklog space in %s\n", a.cfg.MetaDir)
			return nil
		},
	}
}
