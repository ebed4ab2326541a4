package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/velachat/vela/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the vela configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config field (e.g. server, identity, options.debug)",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			key, raw := args[0], args[1]

			// Booleans are stored typed; everything else as a string.
			var value any = raw
			switch raw {
			case "true":
				value = true
			case "false":
				value = false
			}

			if err := config.SetField(key, value); err != nil {
				return err
			}
			fmt.Printf("Set %s in %s\n", key, config.GlobalConfigPath())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			out, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	})

	return cmd
}
