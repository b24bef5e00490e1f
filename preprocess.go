package hstrade

import (
	"fmt"
)

const (
	// DefaultCodeColumn is the product-code column read by Preprocess when none is named.
	DefaultCodeColumn = "HSCode"

	HS2 = "HS2"
	HS4 = "HS4"
)

// Preprocess derives HS2 and HS4 from codeCol, keeps the columns in keep (then HS2 and HS4) and
// drops every row that is missing in a kept column. df is not changed.
//
// HS2 and HS4 are the first two and four characters of the code's string form. Short codes give
// short prefixes. A missing code has the string form NAstring, so its prefixes are "na" and "nan"
// rather than missing; the row survives unless codeCol is itself in keep.
func Preprocess(df *DF, keep []string, codeCol string) (*DF, error) {
	if codeCol == "" {
		codeCol = DefaultCodeColumn
	}

	var (
		code Column
		e    error
	)
	if code, e = df.Column(codeCol); e != nil {
		return nil, fmt.Errorf("preprocess: %w", e)
	}

	codes := code.Data().AsString()
	hs2, hs4 := make([]string, len(codes)), make([]string, len(codes))
	for ind, c := range codes {
		hs2[ind], hs4[ind] = prefix(c, 2), prefix(c, 4)
	}

	var (
		cols  []Column
		check []string
	)
	for _, name := range keep {
		// HS2/HS4 in keep are the derived columns, which are never missing
		if has(name, []string{HS2, HS4}) || has(name, check) {
			continue
		}

		var col Column
		if col, e = df.Column(name); e != nil {
			return nil, fmt.Errorf("preprocess: %w", e)
		}

		cols = append(cols, col)
		check = append(check, name)
	}

	for _, derived := range []struct {
		name string
		vals []string
	}{{HS2, hs2}, {HS4, hs4}} {
		var col *Col
		if col, e = NewCol(derived.vals, DTstring, ColName(derived.name)); e != nil {
			return nil, e
		}

		cols = append(cols, col)
	}

	var dfOut *DF
	if dfOut, e = NewDF(cols...); e != nil {
		return nil, fmt.Errorf("preprocess: %w", e)
	}

	if len(check) == 0 {
		return dfOut.Copy(), nil
	}

	return dfOut.DropNA(check...)
}

// prefix returns the first n characters of s, or all of s if it is shorter.
func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n])
}
