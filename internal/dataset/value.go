package dataset

import "time"

// Kind is the semantic type of a column
type Kind string

const (
	KindText Kind = "text"
	KindDate Kind = "date"
)

// Value is a single cell. The zero Value is the null marker; any other
// value carries the kind it was built with.
type Value struct {
	kind Kind
	text string
	time time.Time
}

// Null returns the null marker
func Null() Value {
	return Value{}
}

// Text returns a non-null text value
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Date returns a non-null timestamp value
func Date(t time.Time) Value {
	return Value{kind: KindDate, time: t}
}

// IsNull reports whether the cell is missing
func (v Value) IsNull() bool {
	return v.kind == ""
}

// Kind returns the cell's kind, empty for null
func (v Value) Kind() Kind {
	return v.kind
}

// Time returns the timestamp held by a date cell
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return v.time, true
}

// String renders the cell. Null renders as the empty string; use IsNull to
// tell a missing cell from an empty text value.
func (v Value) String() string {
	switch v.kind {
	case KindDate:
		if v.time.Hour() == 0 && v.time.Minute() == 0 && v.time.Second() == 0 && v.time.Nanosecond() == 0 {
			return v.time.Format("2006-01-02")
		}
		return v.time.Format("2006-01-02 15:04:05")
	case KindText:
		return v.text
	default:
		return ""
	}
}
