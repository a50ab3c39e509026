// Command pcdinspect picks and inspects points of PCD files from the command line
// and serves the browser viewer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/seqsense/pcdinspector/config"
)

type app struct {
	configPath string
	debug      bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "pcdinspect",
		Short:         "Point cloud inspector",
		Long:          `pcdinspect reads the 3D coordinate of PCD points under a camera pixel.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug log")

	cmd.AddCommand(
		newPickCmd(a),
		newNearestCmd(a),
		newInfoCmd(a),
		newServeCmd(a),
	)
	return cmd
}

func (a *app) init() error {
	level := zapcore.InfoLevel
	if a.debug {
		level = zapcore.DebugLevel
	}
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := logCfg.Build()
	if err != nil {
		return err
	}
	a.logger = logger

	if a.configPath == "" {
		a.cfg = config.Default()
		return nil
	}
	cfg, err := config.LoadFile(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("config loaded", zap.String("path", a.configPath))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
