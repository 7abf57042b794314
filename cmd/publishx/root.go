// cmd/publishx/root.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"publishx/internal/platform/config"
	"publishx/internal/platform/logx"
)

// commandContext comparte la configuración cargada entre los subcomandos.
type commandContext struct {
	cfg    config.Config
	logger logx.Logger
}

func newRootCommand() *cobra.Command {
	cc := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "publishx",
		Short:         "Staged plugin pipeline: collect, validate, extract, integrate",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cc.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	config.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newPublishCommand(cc))
	for _, s := range singleStages {
		rootCmd.AddCommand(newStageCommand(cc, s))
	}
	rootCmd.AddCommand(newPluginsCommand(cc))

	return rootCmd
}

// load construye la configuración a partir de los flags ya parseados.
func (c *commandContext) load(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	c.cfg = cfg

	c.logger = logx.New()
	c.logger.SetLevel(cfg.Level())
	c.logger.Debug("configuration loaded",
		"version", version,
		"config", cfg.ConfigPath,
		"targets", cfg.Targets,
	)
	return nil
}
