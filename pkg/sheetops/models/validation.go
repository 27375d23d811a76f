package models

// ValidationList is a named, dynamically derived sequence of allowed values
// for a dropdown constraint. Lists are recomputed from the lookup sheet on
// every build; nothing is cached between runs.
type ValidationList struct {
	// Name is the registered defined-name, derived from the header plus a
	// fixed suffix.
	Name string `json:"name"`
	// Header is the lookup column header the list was derived from.
	Header string `json:"header"`
	// Values is the contiguous non-empty run beneath the header.
	Values []string `json:"values"`
	// RefersTo is the absolute range reference backing the defined name
	// (e.g. "Lookup!$A$2:$A$4").
	RefersTo string `json:"refers_to"`
}

// Binding records the result of applying validation to one target column.
type Binding struct {
	// Header is the target column's header label.
	Header string `json:"header"`
	// ListName is the bound list's defined-name, empty when the column was
	// cleared without a replacement.
	ListName string `json:"list_name,omitempty"`
	// Err is the error text when the binding failed.
	Err string `json:"err,omitempty"`
}
