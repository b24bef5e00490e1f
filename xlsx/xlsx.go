// Package xlsx writes frames to single-sheet Excel workbooks and reads them back.
package xlsx

import (
	"fmt"
	"io"
	"os"

	"github.com/invertedv/hstrade"
	"github.com/invertedv/hstrade/logging"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Writer saves frames as workbooks. Each save prints a confirmation line to its console writer.
type Writer struct {
	console io.Writer
	log     logging.Logger
}

type Opt func(w *Writer)

// WithConsole sets where confirmation lines go. The default is stdout.
func WithConsole(console io.Writer) Opt {
	return func(w *Writer) {
		w.console = console
	}
}

func WithLogger(log logging.Logger) Opt {
	return func(w *Writer) {
		w.log = log
	}
}

func NewWriter(opts ...Opt) *Writer {
	w := &Writer{console: os.Stdout, log: logging.NewNopLogger()}
	for _, o := range opts {
		o(w)
	}

	return w
}

// Save writes df to a new workbook at path, creating or overwriting it. The workbook has
// one sheet, named sheet, holding the rows of df in order with no header row. Missing values
// are left as empty cells.
func (w *Writer) Save(df *hstrade.DF, path, sheet string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("sheet %q: %w", sheet, err)
	}

	for row := 0; row < df.RowCount(); row++ {
		vals, err := df.Row(row)
		if err != nil {
			return err
		}

		cell, err := excelize.CoordinatesToCellName(1, row+1)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return fmt.Errorf("writing row %d: %w", row+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	w.log.Debug("workbook saved", logging.String("path", path), logging.String("sheet", sheet),
		logging.Int("rows", df.RowCount()))
	_, _ = fmt.Fprintf(w.console, "Saved results to %s\n", path)

	return nil
}

// Save writes df to path with the default Writer.
func Save(df *hstrade.DF, path, sheet string) error {
	return NewWriter().Save(df, path, sheet)
}

// Load returns the cells of sheet as text. An empty sheet name reads the first sheet.
// Trailing empty cells of a row are dropped.
func Load(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s has no sheets", path)
		}

		sheet = sheets[0]
	}

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%s has no sheet %q", path, sheet)
	}

	return f.GetRows(sheet, excelize.Options{RawCellValue: true})
}

// LoadFrame reads sheet into a frame with the given column names. Empty cells are missing.
func LoadFrame(path, sheet string, names ...string) (*hstrade.DF, error) {
	rows, err := Load(path, sheet)
	if err != nil {
		return nil, err
	}

	for ind, r := range rows {
		if len(r) > len(names) {
			return nil, fmt.Errorf("row %d has %d cells, %d names given", ind+1, len(r), len(names))
		}

		for len(rows[ind]) < len(names) {
			rows[ind] = append(rows[ind], "")
		}
	}

	return hstrade.FromRecords(rows, hstrade.FileFieldNames(names...))
}

// Sheets lists the sheet names of the workbook at path.
func Sheets(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return f.GetSheetList(), nil
}
