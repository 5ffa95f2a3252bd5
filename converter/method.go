package converter

import (
	"strings"

	"github.com/erraggy/smdconv/smderrors"
)

// Method is a log odds ratio to SMD conversion method.
type Method string

const (
	// MethodHasselbladHedges assumes a logistic distribution of the
	// underlying continuous outcome
	MethodHasselbladHedges Method = "HH"
	// MethodCoxSnell assumes a normal distribution of the underlying
	// continuous outcome
	MethodCoxSnell Method = "CS"
)

// Methods returns the supported methods in their canonical order.
func Methods() []Method {
	return []Method{MethodHasselbladHedges, MethodCoxSnell}
}

// String returns the method code.
func (m Method) String() string {
	return string(m)
}

// Description returns the method's full name.
func (m Method) Description() string {
	switch m {
	case MethodHasselbladHedges:
		return "Hasselblad-Hedges"
	case MethodCoxSnell:
		return "Cox-Snell"
	default:
		return "unknown"
	}
}

// IsValid reports whether m is one of the supported methods.
func (m Method) IsValid() bool {
	return m == MethodHasselbladHedges || m == MethodCoxSnell
}

// ParseMethod resolves s to a Method. Matching is case-sensitive; an exact
// code wins, otherwise s must be a prefix of exactly one code ("H" → HH).
func ParseMethod(s string) (Method, error) {
	var matches []Method
	for _, m := range Methods() {
		if s == string(m) {
			return m, nil
		}
		if strings.HasPrefix(string(m), s) {
			matches = append(matches, m)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	return "", &smderrors.InvalidChoiceError{
		Argument:  "method",
		Value:     s,
		Choices:   methodCodes(),
		Ambiguous: len(matches) > 1,
	}
}

func methodCodes() []string {
	ms := Methods()
	codes := make([]string, len(ms))
	for i, m := range ms {
		codes[i] = string(m)
	}
	return codes
}
