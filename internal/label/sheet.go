package label

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/labels/pkg/types"
)

// Text settings. Lines are separated by the font size plus lineGap points.
const (
	fontFamily   = "Helvetica"
	fontSizePt   = 10.0
	lineGapPt    = 3.0
	mmPerPoint   = 25.4 / 72
	ascentFactor = 0.75
)

// ErrNoName is returned by Sheet.Add for a record without a usable name.
var ErrNoName = errors.New("record has no usable name")

// Sheet collects labels in print order and renders them to PDF. A nil
// entry is a blank label, used to skip already-used positions on a
// partially printed sheet.
type Sheet struct {
	spec   Spec
	border bool
	log    zerolog.Logger
	labels [][]string
}

// SheetOption configures a Sheet.
type SheetOption func(*Sheet)

// WithBorder outlines every label, which helps line up a test print.
func WithBorder(border bool) SheetOption {
	return func(s *Sheet) {
		s.border = border
	}
}

// WithLogger sets the logger that receives layout warnings.
func WithLogger(log zerolog.Logger) SheetOption {
	return func(s *Sheet) {
		s.log = log
	}
}

// NewSheet returns an empty sheet laid out by spec.
func NewSheet(spec Spec, opts ...SheetOption) (*Sheet, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	s := &Sheet{spec: spec, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AddBlank appends n empty labels.
func (s *Sheet) AddBlank(n int) {
	for range n {
		s.labels = append(s.labels, nil)
	}
}

// Add appends one label for r.
func (s *Sheet) Add(r types.Record) error {
	return s.AddCopies(r, 1)
}

// AddCopies appends n identical labels for r.
func (s *Sheet) AddCopies(r types.Record, n int) error {
	lines, ok := Lines(r)
	if !ok {
		return ErrNoName
	}
	for range n {
		s.labels = append(s.labels, lines)
	}
	return nil
}

// Count returns the number of labels, blanks included.
func (s *Sheet) Count() int {
	return len(s.labels)
}

// Pages returns the number of pages needed for Count labels.
func (s *Sheet) Pages() int {
	per := s.spec.PerPage()
	return (len(s.labels) + per - 1) / per
}

// Save renders the sheet to a PDF file at path.
func (s *Sheet) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := s.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write renders the sheet as PDF to w. Labels whose text does not fit are
// still drawn, with a warning.
func (s *Sheet) Write(w io.Writer) error {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: s.spec.PageWidth, Ht: s.spec.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetFont(fontFamily, "", fontSizePt)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	per := s.spec.PerPage()
	if len(s.labels) == 0 {
		pdf.AddPage()
	}
	for i, lines := range s.labels {
		slot := i % per
		if slot == 0 {
			pdf.AddPage()
		}
		x, y := s.spec.Position(slot)
		if s.border {
			pdf.Rect(x, y, s.spec.LabelWidth, s.spec.LabelHeight, "D")
		}
		if lines != nil {
			s.drawText(pdf, tr, x, y, lines)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// drawText centres lines inside the padded label at (x, y).
func (s *Sheet) drawText(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, lines []string) {
	innerW := s.spec.LabelWidth - 2*s.spec.Padding
	innerH := s.spec.LabelHeight - 2*s.spec.Padding

	fontMM := fontSizePt * mmPerPoint
	pitch := (fontSizePt + lineGapPt) * mmPerPoint
	blockH := fontMM + float64(len(lines)-1)*pitch

	encoded := make([]string, len(lines))
	var blockW float64
	for i, line := range lines {
		encoded[i] = tr(line)
		blockW = max(blockW, pdf.GetStringWidth(encoded[i]))
	}

	if blockW > innerW {
		s.log.Warn().Str("name", lines[0]).Float64("width_mm", blockW).Msg("address too long for label")
	}
	if blockH > innerH {
		s.log.Warn().Str("name", lines[0]).Float64("height_mm", blockH).Msg("address too tall for label")
	}

	left := x + s.spec.Padding + (innerW-blockW)/2
	top := y + s.spec.Padding + (innerH-blockH)/2
	for i, line := range encoded {
		baseline := top + ascentFactor*fontMM + float64(i)*pitch
		pdf.Text(left, baseline, line)
	}
}
