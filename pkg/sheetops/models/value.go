package models

// ValueKind classifies a cell's scalar value.
type ValueKind string

const (
	// KindText is a plain text value.
	KindText ValueKind = "text"
	// KindNumber is a numeric value.
	KindNumber ValueKind = "number"
	// KindBool is a boolean value.
	KindBool ValueKind = "bool"
	// KindEmpty is an empty cell.
	KindEmpty ValueKind = "empty"
)

// Value is a typed scalar read from a cell.
type Value struct {
	// Kind is the value classification.
	Kind ValueKind `json:"kind"`
	// Text is the display text of the cell, present for all kinds.
	Text string `json:"text"`
	// Number is the numeric value when Kind is KindNumber.
	Number float64 `json:"number,omitempty"`
	// Bool is the boolean value when Kind is KindBool.
	Bool bool `json:"bool,omitempty"`
}

// Native returns the value in its natural Go representation, suitable
// for writing back to a cell without losing the underlying type.
func (v Value) Native() interface{} {
	switch v.Kind {
	case KindNumber:
		return v.Number
	case KindBool:
		return v.Bool
	case KindEmpty:
		return nil
	default:
		return v.Text
	}
}
