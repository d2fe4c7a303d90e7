package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/labels/internal/filter"
	"github.com/mesh-intelligence/labels/pkg/types"
)

// selectOutput is the JSON form of a resolved filter.
type selectOutput struct {
	Bounds types.Bounds `json:"bounds"`
	Rows   []int        `json:"rows"`
	Self   *int         `json:"self,omitempty"`
}

func newSelectCmd(a *app) *cobra.Command {
	gf := &generateFlags{}
	var jsonMode bool

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Print the rows a filter selects",
		Long:  "Resolve --filter and --name against the input and print the selected row numbers without writing a PDF.",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.effectiveOptions(cmd, gf)
			if err != nil {
				return err
			}

			sel, err := a.generator(a.log).Select(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonMode {
				res := selectOutput{Bounds: sel.Bounds, Rows: sel.Indices}
				if res.Rows == nil {
					res.Rows = []int{}
				}
				if sel.Self != filter.NoSelf {
					res.Self = &sel.Self
				}
				data, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal selection: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			fmt.Fprintf(out, "rows (%d of %s): %s\n", len(sel.Indices), sel.Bounds, joinInts(sel.Indices))
			if sel.Self != filter.NoSelf {
				fmt.Fprintf(out, "self: %d\n", sel.Self)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&gf.input, "input", "i", types.DefaultOptions().Input, "address spreadsheet (.xlsx, .csv) or address book (.db)")
	f.StringVarP(&gf.filter, "filter", "f", types.DefaultOptions().Filter, "rows to select")
	f.StringVarP(&gf.name, "name", "n", "", "your name, excluded from the selection")
	f.BoolVar(&gf.noHeader, "no-header", false, "the first row holds data, not column titles")
	f.BoolVar(&jsonMode, "json", false, "output as JSON")
	return cmd
}

func joinInts(v []int) string {
	if len(v) == 0 {
		return "none"
	}
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
