package content

import (
	"fmt"
	"strings"
)

// SchemaViolation reports one content entry failing validation: a
// missing required field, a wrong-shaped value, or an unparseable
// date. It fails the entry, not the load pass.
type SchemaViolation struct {
	File  string
	Field string
	Err   error
}

func (v *SchemaViolation) Error() string {
	return fmt.Sprintf("%s: field %q: %v", v.File, v.Field, v.Err)
}

func (v *SchemaViolation) Unwrap() error { return v.Err }

// DateParseError is the cause recorded on a SchemaViolation when a
// date field cannot be normalized.
type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("cannot parse date %q: %v", e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// Report collects schema violations across a load pass so authors see
// every problem in one run. A non-empty report marks the build failed
// even though sibling entries loaded fine.
type Report struct {
	Violations []*SchemaViolation
}

// Add records one violation.
func (r *Report) Add(file, field string, err error) {
	r.Violations = append(r.Violations, &SchemaViolation{File: file, Field: field, Err: err})
}

// Merge appends another report's violations.
func (r *Report) Merge(other *Report) {
	r.Violations = append(r.Violations, other.Violations...)
}

// OK reports whether the load pass had no violations.
func (r *Report) OK() bool { return len(r.Violations) == 0 }

// Err returns an aggregate error listing every violation, or nil.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d content entr", len(r.Violations))
	if len(r.Violations) == 1 {
		b.WriteString("y failed validation:")
	} else {
		b.WriteString("ies failed validation:")
	}

	for _, v := range r.Violations {
		b.WriteString("\n  ")
		b.WriteString(v.Error())
	}

	return fmt.Errorf("%s", b.String())
}
