// Package cli implements the labels command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/labels/internal/filter"
	"github.com/mesh-intelligence/labels/internal/generate"
	"github.com/mesh-intelligence/labels/internal/logger"
	"github.com/mesh-intelligence/labels/internal/paths"
	"github.com/mesh-intelligence/labels/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// errUsage marks command-line mistakes such as unknown flags or a wrong
// argument count.
var errUsage = errors.New("usage error")

// userErrors are the failures caused by what the user typed or configured.
// Anything else is reported as a system error.
var userErrors = []error{
	errUsage,
	filter.ErrSyntax,
	filter.ErrRange,
	filter.ErrNameResolution,
	types.ErrInputEmpty,
	types.ErrOutputEmpty,
	types.ErrBiasNegative,
	types.ErrRetNeedsName,
	types.ErrUnsupportedFormat,
	generate.ErrSelfUnprintable,
	os.ErrNotExist,
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	logFormat string
}

// app is the state shared by the commands of one invocation.
type app struct {
	flags     rootFlags
	configDir string
	config    *viper.Viper
	log       logger.Logger
	generator func(log logger.Logger) *generate.Generator
}

// newApp returns the state for one invocation. Logging stays silent until
// setup has read the log flags.
func newApp() *app {
	return &app{
		log: logger.Logger{Logger: zerolog.Nop()},
		generator: func(log logger.Logger) *generate.Generator {
			return generate.New(generate.WithLogger(log.Logger))
		},
	}
}

// NewRootCmd creates the top-level "labels" command with global flags and
// all subcommands registered. Running it without a subcommand generates
// labels.
func NewRootCmd() *cobra.Command {
	a := newApp()
	gf := &generateFlags{}

	root := &cobra.Command{
		Use:   "labels",
		Short: "Print mailing labels from an address spreadsheet",
		Long: "labels turns the rows of an address spreadsheet or address book into a\n" +
			"PDF of Avery 8160 mailing labels. A filter such as \"mary joe, 4-9, !5\"\n" +
			"chooses the rows to print.",
		Args:              usageArgs(cobra.NoArgs),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, gf)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory for the address book (default: platform data dir)")
	pf.StringVar(&a.flags.logLevel, "log-level", logger.LogLevelInfo, "log level: debug, info, warn, error, disabled")
	pf.StringVar(&a.flags.logFormat, "log-format", logger.ConsoleLoggingFormat, "log format: console or json")

	addGenerateFlags(root, gf)

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newSelectCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "labels: %v\n", err)
	}
	return exitCode(err)
}

// exitCode maps an error returned by a command to an exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}

// setup builds the logger and loads config.yaml before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.log = logger.NewWithWriter(a.flags.logLevel, a.flags.logFormat, cmd.ErrOrStderr())

	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	a.configDir = configDir

	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	a.config = cfg
	return nil
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > LABELS_DATA_DIR env > platform default.
func (a *app) resolveDataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		return nil
	}
}
