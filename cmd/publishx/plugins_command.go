// cmd/publishx/plugins_command.go
package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"publishx/internal/adapters/output"
	"publishx/internal/platform/registry"
)

func newPluginsCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List registered plugins in execution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			metas := registry.Global().AllMetadata()

			if cc.cfg.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(metas)
			}
			return output.PluginsTable(cmd.OutOrStdout(), metas)
		},
	}
}
