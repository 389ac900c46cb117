package categorizer

import (
	"fmt"
	"regexp"

	"github.com/Tinclon/transaction-tracker/internal/parsererror"
)

// Pattern is a compiled description pattern. Matching is an unanchored
// regular-expression search against the raw description and is
// case-sensitive unless the expression starts with the (?i) flag.
type Pattern struct {
	expr string
	re   *regexp.Regexp
}

// CompilePattern compiles a description pattern.
func CompilePattern(expr string) (Pattern, error) {
	if expr == "" {
		return Pattern{}, fmt.Errorf("%w: empty expression", parsererror.ErrInvalidPattern)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("%w: %q: %v", parsererror.ErrInvalidPattern, expr, err)
	}
	return Pattern{expr: expr, re: re}, nil
}

// MustCompilePattern is like CompilePattern but panics on error.
// Use it only for patterns that are constants.
func MustCompilePattern(expr string) Pattern {
	p, err := CompilePattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether the description contains a match of the pattern.
func (p Pattern) Match(description string) bool {
	if p.re == nil {
		return false
	}
	return p.re.MatchString(description)
}

// String returns the source expression.
func (p Pattern) String() string {
	return p.expr
}

// CompilePatterns compiles a list of expressions, keeping their order.
func CompilePatterns(exprs []string) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(exprs))
	for _, expr := range exprs {
		p, err := CompilePattern(expr)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}
