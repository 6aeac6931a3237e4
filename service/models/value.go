package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a NamedValue.
type ValueKind int

const (
	// KindNone marks a value whose wire encoding was neither a string nor a number.
	KindNone ValueKind = iota
	KindString
	KindInteger
	KindFloat
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "none"
	}
}

// NamedValue is the value of a result parameter. Its kind is inferred from
// the JSON encoding since the gateway never declares it.
type NamedValue struct {
	kind    ValueKind
	text    string
	integer int64
	float   float64
}

func StringValue(s string) NamedValue {
	return NamedValue{kind: KindString, text: s}
}

func IntegerValue(i int64) NamedValue {
	return NamedValue{kind: KindInteger, integer: i}
}

func FloatValue(f float64) NamedValue {
	return NamedValue{kind: KindFloat, float: f}
}

func (v NamedValue) Kind() ValueKind {
	return v.kind
}

// AsString returns the value only when it holds a string.
func (v NamedValue) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// AsNumber returns integer and float values widened to float64.
func (v NamedValue) AsNumber() (float64, bool) {
	switch v.kind {
	case KindInteger:
		return float64(v.integer), true
	case KindFloat:
		return v.float, true
	default:
		return 0, false
	}
}

// String renders any variant as text, numbers without exponent.
func (v NamedValue) String() string {
	switch v.kind {
	case KindString:
		return v.text
	case KindInteger:
		return strconv.FormatInt(v.integer, 10)
	case KindFloat:
		return strconv.FormatFloat(v.float, 'f', -1, 64)
	default:
		return ""
	}
}

func (v *NamedValue) UnmarshalJSON(data []byte) error {
	*v = NamedValue{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	switch first := trimmed[0]; {
	case first == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = StringValue(s)

	case first == '-' || (first >= '0' && first <= '9'):
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return err
		}
		if !strings.ContainsAny(n.String(), ".eE") {
			if i, err := n.Int64(); err == nil {
				*v = IntegerValue(i)
				return nil
			}
		}
		f, err := n.Float64()
		if err != nil {
			return err
		}
		*v = FloatValue(f)
	}

	// null, booleans, objects and arrays stay untagged
	return nil
}

func (v NamedValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.text)
	case KindInteger:
		return []byte(strconv.FormatInt(v.integer, 10)), nil
	case KindFloat:
		return json.Marshal(v.float)
	default:
		return []byte("null"), nil
	}
}
