package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/labels/pkg/sqlite"
	"github.com/mesh-intelligence/labels/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and an empty address book",
		Long:  "Create the configuration directory with a default config.yaml, then create an empty address book in the data directory. Existing files are left untouched.",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := a.resolveDataDir()
			if err != nil {
				return fmt.Errorf("resolve data dir: %w", err)
			}

			configPath := filepath.Join(a.configDir, configFileExt)
			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				if _, err := writeConfig(a.configDir, types.DefaultOptions(), ""); err != nil {
					return err
				}
			} else if err != nil {
				return fmt.Errorf("stat config file: %w", err)
			}

			dbPath := filepath.Join(dataDir, sqlite.DefaultFileName)
			book := sqlite.NewAddressBook()
			if err := book.Attach(types.StoreConfig{Path: dbPath}); err != nil {
				return fmt.Errorf("initialize address book: %w", err)
			}
			if err := book.Detach(); err != nil {
				return fmt.Errorf("finalize address book: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config:       %s\n", configPath)
			fmt.Fprintf(out, "address book: %s\n", dbPath)
			return nil
		},
	}
}
