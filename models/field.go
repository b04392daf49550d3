package models

import (
	"strconv"
)

// ─── shared formatting helpers (package-private) ────────────────────────

func itoa64(v int64) string { return strconv.FormatInt(v, 10) }

// ftoa renders the shortest decimal form that parses back to v.
// NaN and infinities come out as "NaN", "+Inf" and "-Inf".
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ─── Field ──────────────────────────────────────────────────────────────

// FieldKind tags which variant a Field holds.
type FieldKind int

const (
	ScalarField FieldKind = iota
	SequenceField
	IntegerField
)

func (k FieldKind) String() string {
	switch k {
	case ScalarField:
		return "scalar"
	case SequenceField:
		return "sequence"
	case IntegerField:
		return "integer"
	default:
		return "unknown"
	}
}

// Field is one column value of a log row: a real scalar, an ordered
// sequence of reals (a full range scan, for instance) or an integer
// such as a nanosecond stamp.
type Field struct {
	Kind     FieldKind
	Scalar   float64
	Sequence []float64
	Integer  int64
}

// Scalar wraps a single real value.
func Scalar(v float64) Field { return Field{Kind: ScalarField, Scalar: v} }

// Sequence wraps an ordered list of reals. The slice is not copied.
func Sequence(vs []float64) Field { return Field{Kind: SequenceField, Sequence: vs} }

// Integer wraps an integer value, typically a stamp in nanoseconds.
func Integer(v int64) Field { return Field{Kind: IntegerField, Integer: v} }

// Tokens flattens the field into its textual tokens. Scalars and integers
// yield exactly one token; a sequence yields one per element, so an empty
// sequence yields none.
func (f Field) Tokens() []string {
	switch f.Kind {
	case SequenceField:
		out := make([]string, len(f.Sequence))
		for i, v := range f.Sequence {
			out[i] = ftoa(v)
		}
		return out
	case IntegerField:
		return []string{itoa64(f.Integer)}
	default:
		return []string{ftoa(f.Scalar)}
	}
}

// Row is one log record. Field order must match the log header; nothing
// checks that.
type Row []Field

// Tokens flattens every field in order. Sequence fields are inlined, so
// the token count may exceed the field count.
func (r Row) Tokens() []string {
	out := make([]string, 0, len(r))
	for _, f := range r {
		out = append(out, f.Tokens()...)
	}
	return out
}

// Loggable is the interface every reading written to a log must satisfy.
type Loggable interface {
	LogHeader() []string
	LogRow() Row
}
