package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/labels/pkg/types"
)

// generateFlags holds the label options given on the command line. Only
// flags the user actually set override config.yaml.
type generateFlags struct {
	input    string
	output   string
	filter   string
	bias     int
	name     string
	ret      bool
	test     bool
	launch   bool
	noHeader bool
	save     bool
}

func addGenerateFlags(cmd *cobra.Command, gf *generateFlags) {
	def := types.DefaultOptions()
	f := cmd.Flags()
	f.StringVarP(&gf.input, "input", "i", def.Input, "address spreadsheet (.xlsx, .csv) or address book (.db)")
	f.StringVarP(&gf.output, "output", "o", def.Output, "PDF file to write")
	f.StringVarP(&gf.filter, "filter", "f", def.Filter, "rows to print, e.g. 'mary joe, 4-9, !5'")
	f.IntVarP(&gf.bias, "bias", "b", def.Bias, "number of already used labels to skip")
	f.StringVarP(&gf.name, "name", "n", def.Name, "your name, to find the return address row")
	f.BoolVarP(&gf.ret, "ret", "r", def.Ret, "add one return address label per printed label")
	f.BoolVarP(&gf.test, "test", "t", def.Test, "draw a border around each label")
	f.BoolVarP(&gf.launch, "launch", "l", def.Launch, "open the PDF when done")
	f.BoolVar(&gf.noHeader, "no-header", false, "the first row holds data, not column titles")
	f.BoolVar(&gf.save, "save", false, "store the effective options in config.yaml")
}

// applyFlags overrides opts with every flag set on cmd.
func (gf *generateFlags) applyFlags(cmd *cobra.Command, opts *types.Options) {
	f := cmd.Flags()
	if f.Changed("input") {
		opts.Input = gf.input
	}
	if f.Changed("output") {
		opts.Output = gf.output
	}
	if f.Changed("filter") {
		opts.Filter = gf.filter
	}
	if f.Changed("bias") {
		opts.Bias = gf.bias
	}
	if f.Changed("name") {
		opts.Name = gf.name
	}
	if f.Changed("ret") {
		opts.Ret = gf.ret
	}
	if f.Changed("test") {
		opts.Test = gf.test
	}
	if f.Changed("launch") {
		opts.Launch = gf.launch
	}
	if f.Changed("no-header") {
		opts.Header = !gf.noHeader
	}
}

func newGenerateCmd(a *app) *cobra.Command {
	gf := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a PDF of mailing labels",
		Long: "Write a PDF of mailing labels for the rows chosen by --filter.\n\n" +
			"A filter is a comma-separated list of clauses applied left to right:\n" +
			"  *          every row\n" +
			"  7          row 7 (rows are numbered from 1, after the header)\n" +
			"  4-9        rows 4 to 9\n" +
			"  mary joe   rows whose names contain every word\n" +
			"  !clause    remove the rows of clause",
		Example: "  labels generate -i addresses.xlsx -f 'mary joe, 4-9, !5' -n 'John Walker' -r",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, gf)
		},
	}
	addGenerateFlags(cmd, gf)
	return cmd
}

// effectiveOptions merges config.yaml with the flags set on cmd.
func (a *app) effectiveOptions(cmd *cobra.Command, gf *generateFlags) (types.Options, error) {
	opts, err := optionsFromConfig(a.config)
	if err != nil {
		return types.Options{}, err
	}
	gf.applyFlags(cmd, &opts)
	return opts, nil
}

func (a *app) runGenerate(cmd *cobra.Command, gf *generateFlags) error {
	opts, err := a.effectiveOptions(cmd, gf)
	if err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	if gf.save {
		path, err := writeConfig(a.configDir, opts, a.config.GetString(cfgKeyDataDir))
		if err != nil {
			return err
		}
		a.log.Debug().Str("path", path).Msg("saved options")
	}

	sum, err := a.generator(a.log).Run(opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d label(s) written to %s on %d page(s)\n", sum.Labels, sum.Output, sum.Pages)
	return nil
}
