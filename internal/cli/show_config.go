package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective options",
		Long:  "Print the options generate would use without flags, as YAML: defaults overlaid by config.yaml and LABELS_* variables.",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := optionsFromConfig(a.config)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(&configFile{Options: opts, DataDir: a.config.GetString(cfgKeyDataDir)})
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", a.configDir, data)
			return nil
		},
	}
}
