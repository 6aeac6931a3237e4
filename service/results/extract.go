// Package results turns the loosely typed parameter lists of gateway result
// notifications into typed records. Extraction never fails: missing keys and
// values of the wrong kind leave the field at its zero value and are reported
// through Extraction.
package results

import (
	"strings"

	"github.com/antinvestor/service-mpesa/service/models"
)

// Extraction records which expected keys were missing or carried a value of
// the wrong kind.
type Extraction struct {
	absent     map[string]struct{}
	mismatched map[string]struct{}
}

// Absent reports whether key did not appear in the parameter list.
func (e Extraction) Absent(key string) bool {
	_, ok := e.absent[strings.ToLower(key)]
	return ok
}

// Mismatched reports whether key appeared with a value of the wrong kind.
func (e Extraction) Mismatched(key string) bool {
	_, ok := e.mismatched[strings.ToLower(key)]
	return ok
}

// Defaulted reports whether the field for key holds a zero value for either reason.
func (e Extraction) Defaulted(key string) bool {
	return e.Absent(key) || e.Mismatched(key)
}

type extractor struct {
	values map[string]models.NamedValue
	Extraction
}

func newExtractor(params models.ParameterList) *extractor {
	values := make(map[string]models.NamedValue, len(params))
	for _, p := range params {
		values[strings.ToLower(p.Key)] = p.Value
	}
	return &extractor{
		values: values,
		Extraction: Extraction{
			absent:     map[string]struct{}{},
			mismatched: map[string]struct{}{},
		},
	}
}

func (e *extractor) lookup(key string) (models.NamedValue, bool) {
	v, ok := e.values[strings.ToLower(key)]
	if !ok {
		e.absent[strings.ToLower(key)] = struct{}{}
	}
	return v, ok
}

func (e *extractor) mismatch(key string) {
	e.mismatched[strings.ToLower(key)] = struct{}{}
}

// number accepts integer and float values.
func (e *extractor) number(key string) float64 {
	v, ok := e.lookup(key)
	if !ok {
		return 0
	}
	n, ok := v.AsNumber()
	if !ok {
		e.mismatch(key)
		return 0
	}
	return n
}

// text accepts string values only.
func (e *extractor) text(key string) string {
	v, ok := e.lookup(key)
	if !ok {
		return ""
	}
	s, ok := v.AsString()
	if !ok {
		e.mismatch(key)
		return ""
	}
	return s
}

// numericText renders a numeric value in plain decimal notation, so that
// 20191219102115 and 254708374149 keep every digit.
func (e *extractor) numericText(key string) string {
	v, ok := e.lookup(key)
	if !ok {
		return ""
	}
	switch v.Kind() {
	case models.KindInteger, models.KindFloat:
		return v.String()
	default:
		e.mismatch(key)
		return ""
	}
}

// anyText renders any tagged value as text.
func (e *extractor) anyText(key string) string {
	v, ok := e.lookup(key)
	if !ok {
		return ""
	}
	if v.Kind() == models.KindNone {
		e.mismatch(key)
		return ""
	}
	return v.String()
}
