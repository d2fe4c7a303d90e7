package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/labels/internal/paths"
	"github.com/mesh-intelligence/labels/internal/sheet"
	"github.com/mesh-intelligence/labels/pkg/sqlite"
	"github.com/mesh-intelligence/labels/pkg/types"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		dbPath   string
		noHeader bool
	)

	cmd := &cobra.Command{
		Use:   "import <spreadsheet>",
		Short: "Load a spreadsheet into the address book",
		Long: "Replace the contents of the SQLite address book with the rows of an .xlsx or .csv file.\n" +
			"The address book can then be used as --input for generate and select.",
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := paths.Abs(args[0])
			if err != nil {
				return fmt.Errorf("input path: %w", err)
			}
			records, err := sheet.Read(input, !noHeader)
			if err != nil {
				return err
			}

			if dbPath == "" {
				dataDir, err := a.resolveDataDir()
				if err != nil {
					return fmt.Errorf("resolve data dir: %w", err)
				}
				dbPath = filepath.Join(dataDir, sqlite.DefaultFileName)
			}
			if dbPath, err = paths.Abs(dbPath); err != nil {
				return fmt.Errorf("address book path: %w", err)
			}

			book := sqlite.NewAddressBook()
			if err := book.Attach(types.StoreConfig{Path: dbPath}); err != nil {
				return fmt.Errorf("attach address book: %w", err)
			}
			defer book.Detach()

			n, err := book.Import(records)
			if err != nil {
				return err
			}
			a.log.Info().Int("records", n).Str("path", dbPath).Msg("imported addresses")
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d record(s) into %s\n", n, dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "address book file (default: <data-dir>/addresses.db)")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "the first row holds data, not column titles")
	return cmd
}
