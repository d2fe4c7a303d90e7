// Package generate runs a label job: it opens the address source, resolves
// the filter, lays out the label sheet and writes the PDF.
package generate

import (
	"errors"
	"fmt"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/labels/internal/filter"
	"github.com/mesh-intelligence/labels/internal/label"
	"github.com/mesh-intelligence/labels/internal/paths"
	"github.com/mesh-intelligence/labels/internal/source"
	"github.com/mesh-intelligence/labels/pkg/types"
)

// ErrSelfUnprintable is returned when the return-address row lacks the
// fields needed to print it.
var ErrSelfUnprintable = errors.New("return address row cannot be printed")

// OpenFunc opens an address source.
type OpenFunc func(path string, header bool) (types.Roster, error)

// LaunchFunc opens a written PDF for viewing.
type LaunchFunc func(path string) error

// Generator holds the collaborators of a label job. The zero value is not
// usable; create one with New.
type Generator struct {
	log    zerolog.Logger
	spec   label.Spec
	open   OpenFunc
	launch LaunchFunc
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger for match counts, skipped rows and the summary.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Generator) {
		g.log = log
	}
}

// WithSpec replaces the Avery 8160 layout.
func WithSpec(spec label.Spec) Option {
	return func(g *Generator) {
		g.spec = spec
	}
}

// WithOpener replaces source.Open.
func WithOpener(open OpenFunc) Option {
	return func(g *Generator) {
		g.open = open
	}
}

// WithLauncher replaces the system PDF viewer.
func WithLauncher(launch LaunchFunc) Option {
	return func(g *Generator) {
		g.launch = launch
	}
}

// New returns a Generator with the default sources, layout and viewer.
func New(opts ...Option) *Generator {
	g := &Generator{
		log:    zerolog.Nop(),
		spec:   label.Avery8160(),
		open:   source.Open,
		launch: browser.OpenFile,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Selection is the outcome of resolving a filter against a source.
type Selection struct {
	Bounds  types.Bounds
	Indices []int
	Self    int
}

// Summary reports what a Run printed.
type Summary struct {
	Output   string
	Selected int
	Printed  int
	Skipped  []int
	Returns  int
	Blanks   int
	Labels   int
	Pages    int
}

// Select resolves opts.Filter and opts.Name against opts.Input without
// rendering anything.
func (g *Generator) Select(opts types.Options) (Selection, error) {
	if opts.Input == "" {
		return Selection{}, types.ErrInputEmpty
	}
	roster, err := g.openInput(opts)
	if err != nil {
		return Selection{}, err
	}
	defer roster.Close()

	res, err := g.evaluate(opts, roster)
	if err != nil {
		return Selection{}, err
	}
	return Selection{
		Bounds:  roster.Bounds(),
		Indices: res.Selection.Indices(),
		Self:    res.Self,
	}, nil
}

// Run generates the label PDF described by opts.
func (g *Generator) Run(opts types.Options) (Summary, error) {
	if err := opts.Validate(); err != nil {
		return Summary{}, err
	}
	output, err := paths.Abs(opts.Output)
	if err != nil {
		return Summary{}, fmt.Errorf("output path: %w", err)
	}

	roster, err := g.openInput(opts)
	if err != nil {
		return Summary{}, err
	}
	defer roster.Close()

	res, err := g.evaluate(opts, roster)
	if err != nil {
		return Summary{}, err
	}

	sheet, err := label.NewSheet(g.spec, label.WithBorder(opts.Test), label.WithLogger(g.log))
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Output: output, Selected: res.Selection.Len(), Blanks: opts.Bias}
	sheet.AddBlank(opts.Bias)

	for _, idx := range res.Selection.Indices() {
		rec, err := roster.Get(idx)
		if err != nil {
			return Summary{}, fmt.Errorf("read row %d: %w", idx, err)
		}
		if !g.printable(idx, rec) {
			sum.Skipped = append(sum.Skipped, idx)
			continue
		}
		if err := sheet.Add(rec); err != nil {
			return Summary{}, fmt.Errorf("row %d: %w", idx, err)
		}
		sum.Printed++
	}

	if opts.Ret {
		n, err := g.addReturns(sheet, roster, res, sum.Printed)
		if err != nil {
			return Summary{}, err
		}
		sum.Returns = n
	}

	if err := sheet.Save(output); err != nil {
		return Summary{}, err
	}
	sum.Labels = sheet.Count()
	sum.Pages = sheet.Pages()
	g.log.Info().
		Int("labels", sum.Labels).
		Int("pages", sum.Pages).
		Str("output", output).
		Msgf("%d label(s) on %d page(s)", sum.Labels, sum.Pages)

	if opts.Launch {
		if err := g.launch(output); err != nil {
			g.log.Warn().Err(err).Str("output", output).Msg("could not open pdf")
		}
	}
	return sum, nil
}

func (g *Generator) openInput(opts types.Options) (types.Roster, error) {
	input, err := paths.Abs(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("input path: %w", err)
	}
	roster, err := g.open(input, opts.Header)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", input, err)
	}
	return roster, nil
}

func (g *Generator) evaluate(opts types.Options, roster types.Roster) (filter.Result, error) {
	observe := filter.WithMatchObserver(func(term string, matches int) {
		g.log.Info().Str("filter", term).Int("matches", matches).Msg("matched name")
	})
	return filter.Evaluate(opts.Filter, opts.Name, roster.Bounds(), roster, observe)
}

// printable reports whether rec can be put on a label, warning about rows
// that cannot.
func (g *Generator) printable(idx int, rec types.Record) bool {
	if rec.IsBlank() {
		g.log.Warn().Int("row", idx).Msg("skipping blank row")
		return false
	}
	if missing := rec.Missing(); len(missing) > 0 {
		g.log.Warn().
			Int("row", idx).
			Str("first_name", rec.FirstName1).
			Strs("missing", missing).
			Msg("skipping row with missing address fields")
		return false
	}
	return true
}

// addReturns appends one return-address label per printed label.
func (g *Generator) addReturns(sheet *label.Sheet, roster types.Roster, res filter.Result, copies int) (int, error) {
	if !res.HasSelf() {
		return 0, types.ErrRetNeedsName
	}
	self, err := roster.Get(res.Self)
	if err != nil {
		return 0, fmt.Errorf("read return address row %d: %w", res.Self, err)
	}
	if missing := self.Missing(); len(missing) > 0 {
		return 0, fmt.Errorf("%w: row %d is missing %v", ErrSelfUnprintable, res.Self, missing)
	}
	if err := sheet.AddCopies(self, copies); err != nil {
		return 0, fmt.Errorf("%w: row %d: %v", ErrSelfUnprintable, res.Self, err)
	}
	return copies, nil
}
