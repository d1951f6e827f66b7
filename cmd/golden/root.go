package main

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tsawler/golden/config"
)

// errDifferences is returned by compare when any target does not pass
var errDifferences = errors.New("differences found")

// app carries the state shared by every subcommand
type app struct {
	version    string
	configPath string
	envFiles   []string
	logLevel   string
	logJSON    bool

	cfg config.Config
	log *logrus.Logger
}

func newRootCmd(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:           "golden",
		Short:         "Compare generated documents against golden references",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./golden.yaml if present)")
	flags.StringSliceVar(&a.envFiles, "env-file", nil, "dotenv files to load (default .env)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&a.logJSON, "log-json", false, "log as JSON")

	root.AddCommand(
		newCompareCmd(a),
		newHistoryCmd(a),
		newExtractCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup loads configuration and builds the logger. Flags given on the
// command line take precedence over the config file and environment.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, a.envFiles...)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-json") {
		cfg.Log.JSON = a.logJSON
	}

	log, err := cfg.Logger()
	if err != nil {
		return err
	}
	log.SetOutput(cmd.ErrOrStderr())

	a.cfg = cfg
	a.log = log
	return nil
}
