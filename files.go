package hstrade

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// All code interacting with delimited text files is here

const (
	Sep         = ','
	EOL         = '\n'
	StringDelim = '"'
	FloatFormat = "%g"
	Header      = true
)

// NAtokens are the cell values read as missing.
var NAtokens = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL"}

type Files struct {
	FieldNames  []string
	Sep         rune
	EOL         byte
	StringDelim byte
	FloatFormat string
	Header      bool

	// NAs are the tokens read as missing values
	NAs []string
	// StringCols are read as text regardless of content
	StringCols []string

	file     *os.File
	fileName string
}

type FileOpt func(f *Files) error

func NewFiles(opts ...FileOpt) (*Files, error) {
	f := &Files{
		Sep:         Sep,
		EOL:         byte(EOL),
		StringDelim: byte(StringDelim),
		FloatFormat: FloatFormat,
		Header:      Header,
		NAs:         NAtokens,
	}

	for _, opt := range opts {
		if e := opt(f); e != nil {
			return nil, e
		}
	}

	return f, nil
}

// ***************** Options *****************

func FileSep(sep rune) FileOpt {
	return func(f *Files) error {
		if sep == '\n' || sep == '\r' || sep == '"' {
			return fmt.Errorf("illegal separator %q", sep)
		}

		f.Sep = sep
		return nil
	}
}

func FileHeader(header bool) FileOpt {
	return func(f *Files) error {
		f.Header = header
		return nil
	}
}

// FileFieldNames supplies the column names for files without a header row.
func FileFieldNames(names ...string) FileOpt {
	return func(f *Files) error {
		f.FieldNames = names
		return nil
	}
}

func FileNA(tokens ...string) FileOpt {
	return func(f *Files) error {
		f.NAs = tokens
		return nil
	}
}

func FileStringCols(cols ...string) FileOpt {
	return func(f *Files) error {
		f.StringCols = cols
		return nil
	}
}

func FileFloatFormat(format string) FileOpt {
	return func(f *Files) error {
		if !strings.Contains(format, "%") {
			return fmt.Errorf("bad float format %s", format)
		}

		f.FloatFormat = format
		return nil
	}
}

// ***************** Methods *****************

func (f *Files) Open(fileName string) error {
	var e error
	f.fileName = fileName
	f.file, e = os.Open(fileName)

	return e
}

func (f *Files) Create(fileName string) error {
	var e error
	f.fileName = fileName
	f.file, e = os.Create(fileName)

	return e
}

func (f *Files) FileName() string {
	return f.fileName
}

func (f *Files) Close() error {
	if f.file != nil {
		e := f.file.Close()
		f.file = nil
		return e
	}

	return fmt.Errorf("no open files")
}

// Read reads the open file into a DF. Column types are inferred from the non-missing cells.
func (f *Files) Read() (*DF, error) {
	if f.file == nil {
		return nil, fmt.Errorf("no open files")
	}

	return f.readFrom(f.file)
}

func (f *Files) readFrom(r io.Reader) (*DF, error) {
	rdr := csv.NewReader(r)
	rdr.Comma = f.Sep
	rdr.FieldsPerRecord = 0
	rdr.ReuseRecord = false

	var (
		records [][]string
		e       error
	)
	if records, e = rdr.ReadAll(); e != nil {
		return nil, fmt.Errorf("reading %s: %w", f.fileName, e)
	}

	if f.Header {
		if len(records) == 0 {
			return nil, fmt.Errorf("%s is empty", f.fileName)
		}

		f.FieldNames = records[0]
		for ind := range f.FieldNames {
			f.FieldNames[ind] = strings.TrimSpace(strings.TrimPrefix(f.FieldNames[ind], "\ufeff"))
		}

		records = records[1:]
	}

	return f.fromRecords(records)
}

// fromRecords builds a DF from text records, one column per field name.
func (f *Files) fromRecords(records [][]string) (*DF, error) {
	if len(f.FieldNames) == 0 {
		return nil, fmt.Errorf("field names not set in *Files")
	}

	for ind, rec := range records {
		if len(rec) != len(f.FieldNames) {
			return nil, fmt.Errorf("%s: row %d has %d fields, expected %d", f.fileName, ind+1, len(rec), len(f.FieldNames))
		}
	}

	var cols []Column
	for c, name := range f.FieldNames {
		vals := make([]any, len(records))
		for r, rec := range records {
			if has(rec[c], f.NAs) {
				continue
			}

			vals[r] = rec[c]
		}

		var (
			v   *Vector
			col *Col
			e1  error
		)
		if v, e1 = inferVector(vals, has(name, f.StringCols)); e1 != nil {
			return nil, fmt.Errorf("column %s: %w", name, e1)
		}

		if col, e1 = NewColVector(v, ColName(name)); e1 != nil {
			return nil, e1
		}

		cols = append(cols, col)
	}

	return NewDF(cols...)
}

func (f *Files) WriteLine(v []any) error {
	var line []byte
	for ind := 0; ind < len(v); ind++ {
		var lx []byte
		switch d := v[ind].(type) {
		case nil:
		case float64:
			lx = []byte(fmt.Sprintf(f.FloatFormat, d))
		case int:
			lx = []byte(fmt.Sprintf("%v", d))
		case string:
			lx = []byte(d)
			if strings.ContainsAny(d, string([]rune{f.Sep, '"', '\n'})) {
				lx = []byte(strings.ReplaceAll(d, `"`, `""`))
				lx = append([]byte{f.StringDelim}, lx...)
				lx = append(lx, f.StringDelim)
			}
		default:
			lx = []byte("#err#")
		}
		line = append(line, lx...)
		if ind < len(v)-1 {
			line = append(line, []byte(string(f.Sep))...)
		}
	}
	if _, e := f.file.Write(line); e != nil {
		return e
	}
	_, e := f.file.Write([]byte{f.EOL})

	return e
}

func (f *Files) WriteHeader() error {
	if !f.Header {
		return nil
	}

	if f.FieldNames == nil {
		return fmt.Errorf("field names not set in *Files")
	}

	_, e := f.file.WriteString(strings.Join(f.FieldNames, string(f.Sep)) + string(rune(f.EOL)))

	return e
}

// Write writes df to the open file. Missing values are written as empty fields.
func (f *Files) Write(df *DF) error {
	if f.file == nil {
		return fmt.Errorf("no open files")
	}

	f.FieldNames = df.ColumnNames()
	if e := f.WriteHeader(); e != nil {
		return e
	}

	for row := 0; row < df.RowCount(); row++ {
		r, _ := df.Row(row)
		if e := f.WriteLine(r); e != nil {
			return e
		}
	}

	return nil
}

// ***************** Functions *****************

// LoadCSV reads fileName into a DF.
func LoadCSV(fileName string, opts ...FileOpt) (*DF, error) {
	var (
		f *Files
		e error
	)
	if f, e = NewFiles(opts...); e != nil {
		return nil, e
	}

	if e = f.Open(fileName); e != nil {
		return nil, e
	}
	defer func() { _ = f.Close() }()

	return f.Read()
}

// ReadCSV reads delimited text from r into a DF.
func ReadCSV(r io.Reader, opts ...FileOpt) (*DF, error) {
	var (
		f *Files
		e error
	)
	if f, e = NewFiles(opts...); e != nil {
		return nil, e
	}

	return f.readFrom(r)
}

// FromRecords builds a DF from rows of text, inferring column types as LoadCSV does.
// Supply the column names with FileFieldNames; the header option is ignored.
func FromRecords(records [][]string, opts ...FileOpt) (*DF, error) {
	var (
		f *Files
		e error
	)
	if f, e = NewFiles(opts...); e != nil {
		return nil, e
	}

	return f.fromRecords(records)
}

// SaveCSV writes df to fileName with a header row.
func SaveCSV(fileName string, df *DF, opts ...FileOpt) error {
	var (
		f *Files
		e error
	)
	if f, e = NewFiles(opts...); e != nil {
		return e
	}

	if e = f.Create(fileName); e != nil {
		return e
	}

	if e = f.Write(df); e != nil {
		_ = f.Close()
		return e
	}

	return f.Close()
}
