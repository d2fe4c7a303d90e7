// Package sheet reads address records from spreadsheet files. Columns are
// read in the fixed order last1, first1, last2, first2, address1, address2,
// city, state, zip, country.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tealeg/xlsx"

	"github.com/mesh-intelligence/labels/internal/roster"
	"github.com/mesh-intelligence/labels/pkg/types"
)

// Supported file extensions.
const (
	ExtXLSX = ".xlsx"
	ExtCSV  = ".csv"
)

// ErrNoSheets is returned for a workbook without worksheets.
var ErrNoSheets = errors.New("workbook has no worksheets")

// utf8BOM is written at the start of CSV files exported by Excel.
const utf8BOM = "\ufeff"

// Supports reports whether path has an extension this package can read.
func Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtXLSX, ExtCSV:
		return true
	}
	return false
}

// Load reads path and returns an in-memory roster over its data rows.
// When header is true the first row is skipped.
func Load(path string, header bool) (*roster.Roster, error) {
	records, err := Read(path, header)
	if err != nil {
		return nil, err
	}
	return roster.New(records), nil
}

// Read reads the data rows of an .xlsx or .csv file.
func Read(path string, header bool) ([]types.Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("input file %s is a directory", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtXLSX:
		return ReadXLSX(path, header)
	case ExtCSV:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return ReadCSV(f, header)
	default:
		return nil, fmt.Errorf("%w: %q, only %s and %s files are supported",
			types.ErrUnsupportedFormat, ext, ExtXLSX, ExtCSV)
	}
}

// ReadXLSX reads the first worksheet of an Excel workbook. Rows after the
// last row holding a value are ignored, since worksheets often report
// formatted but empty rows.
func ReadXLSX(path string, header bool) ([]types.Record, error) {
	wb, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSheets)
	}

	var rows [][]string
	for _, row := range wb.Sheets[0].Rows {
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, 0, types.ColumnCount)
		for i, cell := range row.Cells {
			if i == types.ColumnCount {
				break
			}
			if cell == nil {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, cell.Value)
		}
		rows = append(rows, cells)
	}
	return toRecords(rows, header), nil
}

// ReadCSV reads comma-separated rows. Rows may have any number of fields;
// missing trailing columns are absent and extra columns are ignored.
func ReadCSV(r io.Reader, header bool) ([]types.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var rows [][]string
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if len(rows) == 0 && len(fields) > 0 {
			fields[0] = strings.TrimPrefix(fields[0], utf8BOM)
		}
		rows = append(rows, fields)
	}
	return toRecords(rows, header), nil
}

// toRecords drops the header and trailing empty rows, then maps each row
// onto a Record.
func toRecords(rows [][]string, header bool) []types.Record {
	if header && len(rows) > 0 {
		rows = rows[1:]
	}
	for len(rows) > 0 && isEmptyRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}

	records := make([]types.Record, len(rows))
	for i, row := range rows {
		records[i] = types.RecordFromCells(row)
	}
	return records
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
