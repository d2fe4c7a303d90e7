// Package label lays address records out on sheets of mailing labels and
// renders them to PDF.
package label

import (
	"errors"
	"fmt"
)

// Spec describes the geometry of a label sheet in millimetres. Labels are
// filled left to right, then top to bottom.
type Spec struct {
	PageWidth    float64
	PageHeight   float64
	Columns      int
	Rows         int
	LabelWidth   float64
	LabelHeight  float64
	LeftMargin   float64
	RightMargin  float64
	TopMargin    float64
	Padding      float64
	RowGap       float64
	CornerRadius float64
}

// ErrSpecInvalid is returned by Spec.Validate.
var ErrSpecInvalid = errors.New("invalid label sheet spec")

// Avery8160 returns the spec for Avery 5160/8160 address labels on US
// Letter paper: 30 labels of 2⅝" × 1".
func Avery8160() Spec {
	return Spec{
		PageWidth:    215.9,
		PageHeight:   279.4,
		Columns:      3,
		Rows:         10,
		LabelWidth:   66.7,
		LabelHeight:  25.4,
		LeftMargin:   5,
		RightMargin:  5,
		TopMargin:    13,
		Padding:      1,
		RowGap:       0,
		CornerRadius: 2,
	}
}

// PerPage returns the number of labels on one sheet.
func (s Spec) PerPage() int {
	return s.Columns * s.Rows
}

// ColumnGap returns the horizontal space between columns left over once
// margins and labels are placed.
func (s Spec) ColumnGap() float64 {
	if s.Columns < 2 {
		return 0
	}
	used := s.LeftMargin + s.RightMargin + float64(s.Columns)*s.LabelWidth
	return (s.PageWidth - used) / float64(s.Columns-1)
}

// Validate checks that the labels fit on the page.
func (s Spec) Validate() error {
	if s.Columns < 1 || s.Rows < 1 {
		return fmt.Errorf("%w: need at least one row and column", ErrSpecInvalid)
	}
	if s.LabelWidth <= 2*s.Padding || s.LabelHeight <= 2*s.Padding {
		return fmt.Errorf("%w: padding leaves no room on the label", ErrSpecInvalid)
	}
	if s.ColumnGap() < 0 {
		return fmt.Errorf("%w: %d columns of %.1fmm do not fit across %.1fmm",
			ErrSpecInvalid, s.Columns, s.LabelWidth, s.PageWidth)
	}
	height := s.TopMargin + float64(s.Rows)*s.LabelHeight + float64(s.Rows-1)*s.RowGap
	if height > s.PageHeight {
		return fmt.Errorf("%w: %d rows need %.1fmm, page is %.1fmm",
			ErrSpecInvalid, s.Rows, height, s.PageHeight)
	}
	return nil
}

// Position returns the top-left corner of the label in the given slot of
// a page, counting from 0.
func (s Spec) Position(slot int) (x, y float64) {
	col := slot % s.Columns
	row := slot / s.Columns
	x = s.LeftMargin + float64(col)*(s.LabelWidth+s.ColumnGap())
	y = s.TopMargin + float64(row)*(s.LabelHeight+s.RowGap)
	return x, y
}
