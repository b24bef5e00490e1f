package ols

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormula is returned for formulas that cannot be parsed.
var ErrFormula = errors.New("invalid formula")

// Formula is a parsed model formula of the form
//
//	target ~ term + term + ...
//
// A term is a column name or C(column), which marks the column as categorical.
// "- 1" or "+ 0" removes the intercept; "+ 1" is accepted and ignored.
type Formula struct {
	Target    string
	Terms     []Term
	Intercept bool

	expr string
}

// Term is one right-hand-side entry of a Formula.
type Term struct {
	Name        string
	Categorical bool
}

func (t Term) String() string {
	if t.Categorical {
		return "C(" + t.Name + ")"
	}

	return t.Name
}

// Parse parses a formula.
func Parse(expr string) (*Formula, error) {
	f := &Formula{Intercept: true, expr: expr}

	expr = strings.ReplaceAll(expr, " ", "")
	sides := strings.Split(expr, "~")
	if len(sides) != 2 {
		return nil, fmt.Errorf("%w: %s: need exactly one ~", ErrFormula, f.expr)
	}

	if f.Target = sides[0]; f.Target == "" || !plainName(f.Target) {
		return nil, fmt.Errorf("%w: %s: bad target %q", ErrFormula, f.expr, sides[0])
	}

	if e := parenError(sides[1]); e != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormula, f.expr, e)
	}

	var (
		terms []string
		signs []byte
		e     error
	)
	if terms, signs, e = scan(sides[1]); e != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormula, f.expr, e)
	}

	for ind, t := range terms {
		switch {
		case t == "1" && signs[ind] == '+':
			continue
		case (t == "1" && signs[ind] == '-') || (t == "0" && signs[ind] == '+'):
			f.Intercept = false
			continue
		case signs[ind] == '-':
			return nil, fmt.Errorf("%w: %s: cannot remove term %s", ErrFormula, f.expr, t)
		}

		var term Term
		if term, e = parseTerm(t); e != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFormula, f.expr, e)
		}

		if term.Name == f.Target {
			return nil, fmt.Errorf("%w: %s: target %s on both sides", ErrFormula, f.expr, term.Name)
		}

		// repeated terms enter the model once
		dup := false
		for _, have := range f.Terms {
			if have == term {
				dup = true
			}
		}

		if !dup {
			f.Terms = append(f.Terms, term)
		}
	}

	if len(f.Terms) == 0 && !f.Intercept {
		return nil, fmt.Errorf("%w: %s: no terms", ErrFormula, f.expr)
	}

	return f, nil
}

// Columns returns the target and every column named by a term.
func (f *Formula) Columns() []string {
	cols := []string{f.Target}
	for _, t := range f.Terms {
		cols = append(cols, t.Name)
	}

	return cols
}

func (f *Formula) String() string {
	var terms []string
	for _, t := range f.Terms {
		terms = append(terms, t.String())
	}

	rhs := strings.Join(terms, " + ")
	if !f.Intercept {
		rhs += " - 1"
	}

	if rhs == "" {
		rhs = "1"
	}

	return f.Target + " ~ " + rhs
}

// scan splits rhs at the + and - operators that are not inside parentheses.
func scan(rhs string) (terms []string, signs []byte, err error) {
	depth, start := 0, 0
	sign := byte('+')

	// a leading sign applies to the first term
	if rhs != "" && (rhs[0] == '+' || rhs[0] == '-') {
		sign, start = rhs[0], 1
	}

	for ind := start; ind <= len(rhs); ind++ {
		if ind < len(rhs) {
			switch rhs[ind] {
			case '(':
				depth++
				continue
			case ')':
				depth--
				continue
			case '+', '-':
				if depth > 0 {
					continue
				}
			default:
				continue
			}
		}

		t := rhs[start:ind]
		if t == "" {
			return nil, nil, fmt.Errorf("empty term at position %d", ind)
		}

		terms = append(terms, t)
		signs = append(signs, sign)

		if ind < len(rhs) {
			sign = rhs[ind]
		}

		start = ind + 1
	}

	return terms, signs, nil
}

func parseTerm(t string) (Term, error) {
	if strings.HasPrefix(t, "C(") && strings.HasSuffix(t, ")") {
		name := t[2 : len(t)-1]
		if !plainName(name) {
			return Term{}, fmt.Errorf("bad categorical term %s", t)
		}

		return Term{Name: name, Categorical: true}, nil
	}

	if !plainName(t) {
		return Term{}, fmt.Errorf("unsupported term %s", t)
	}

	return Term{Name: t}, nil
}

func plainName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "()+-~*/:^,")
}

// parenError returns an error if the parentheses in s are not balanced
func parenError(s string) error {
	depth := 0
	for _, ch := range s {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		}

		if depth < 0 {
			return fmt.Errorf("unbalanced parentheses")
		}
	}

	if depth != 0 {
		return fmt.Errorf("unbalanced parentheses")
	}

	return nil
}
