package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("not found")

// SuccessPath is where the client navigates after an accepted submission.
const SuccessPath = "/submission-success"

// FieldKind distinguishes the controls that carry a submitted value.
type FieldKind int

const (
	KindInput FieldKind = iota
	KindSelect
	// KindFile values are local file paths; the submitter streams the file.
	KindFile
)

// Field is one named form input or select.
type Field struct {
	Name     string
	Value    string
	Required bool
	Kind     FieldKind
}

// Control is any element inside the form that may take keyboard focus.
type Control struct {
	ID   string
	Tag  string // button, a, input, select, textarea, div ...
	Type string // "submit" for the submit control
	Href string
	// TabIndex is nil when the element has no tabindex attribute.
	TabIndex *int
	Disabled bool
}

// IsSubmit reports whether c is the form's submit control.
func (c Control) IsSubmit() bool { return c.Type == "submit" }

// Employee is the record persisted from an accepted intake form.
type Employee struct {
	ID                     int64
	FirstName              string
	LastName               string
	Email                  string
	Phone                  string
	PreferredContactMethod string
	Address                string // address and address_2 joined by ", "
	City                   string
	State                  string
	Zipcode                string
	ResumePath             string
	CreatedAt              time.Time
}

// SubmissionError collapses every way a submission can fail: transport
// errors, non-success statuses and undecodable responses.
type SubmissionError struct {
	Op         string // "post", "status" or "decode"
	StatusCode int
	Status     string
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 && e.Err == nil {
		return fmt.Sprintf("submission %s: network response was not ok: %s", e.Op, e.Status)
	}
	return fmt.Sprintf("submission %s: %v", e.Op, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }
