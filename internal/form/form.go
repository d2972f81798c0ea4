// Package form is a headless model of the new-employee form: field values,
// the visible validation state of every field, and keyboard focus.
package form

import (
	"fmt"
	"slices"
	"sync"

	"github.com/csg33k/employee-intake/internal/domain"
	"github.com/csg33k/employee-intake/internal/validation"
)

const (
	DefaultID   = "new-employee-form"
	SummaryID   = "form-errors"
	InvalidMark = "is-invalid"
)

// Feedback is the message element owned by one input.
type Feedback struct {
	ID      string
	Text    string
	Visible bool
}

// Input is a field together with its visible validation state.
// Invalid mirrors the is-invalid marker class.
type Input struct {
	domain.Field
	Label    string
	Options  []string // select choices
	Invalid  bool
	Feedback Feedback
}

func (in *Input) apply(v validation.Verdict) {
	if v.Valid {
		in.Invalid = false
		in.Feedback.Visible = false
		return
	}
	in.Invalid = true
	in.Feedback.Text = v.Message
	in.Feedback.Visible = true
}

// Summary is the form-level error element. It is rendered but nothing
// writes to it.
type Summary struct {
	ID string
}

// Form holds the inputs and focusable controls of one form.
type Form struct {
	ID      string
	Action  string
	Summary Summary

	mu       sync.Mutex
	inputs   []*Input
	controls []domain.Control
	active   string
}

// New builds a form from its inputs and focusable controls, in document
// order. Every input must also appear in controls under its name.
func New(action string, inputs []Input, controls []domain.Control) *Form {
	f := &Form{
		ID:       DefaultID,
		Action:   action,
		Summary:  Summary{ID: SummaryID},
		controls: slices.Clone(controls),
	}
	for i := range inputs {
		in := inputs[i]
		in.Feedback.ID = in.Name + "-feedback"
		f.inputs = append(f.inputs, &in)
	}
	return f
}

func (f *Form) lookup(name string) (*Input, error) {
	for _, in := range f.inputs {
		if in.Name == name {
			return in, nil
		}
	}
	return nil, fmt.Errorf("form %s: no field %q", f.ID, name)
}

// Set changes the value of a field.
func (f *Form) Set(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	in, err := f.lookup(name)
	if err != nil {
		return err
	}
	in.Value = value
	return nil
}

// Value returns the current value of a field.
func (f *Form) Value(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	in, err := f.lookup(name)
	if err != nil {
		return ""
	}
	return in.Value
}

// Input returns a snapshot of one input.
func (f *Form) Input(name string) (Input, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	in, err := f.lookup(name)
	if err != nil {
		return Input{}, false
	}
	return *in, true
}

// Inputs returns a snapshot of every input in document order.
func (f *Form) Inputs() []Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Input, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = *in
	}
	return out
}

// Blur validates a single field and updates its visible state.
func (f *Form) Blur(name string) (validation.Verdict, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	in, err := f.lookup(name)
	if err != nil {
		return validation.Verdict{}, err
	}
	v := validation.Check(in.Field)
	in.apply(v)
	return v, nil
}

// Validate validates every field and updates their visible state. It
// returns one verdict per input, in document order.
func (f *Form) Validate() ([]validation.Verdict, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fields := make([]domain.Field, len(f.inputs))
	for i, in := range f.inputs {
		fields[i] = in.Field
	}
	verdicts, ok := validation.CheckAll(fields)
	for i, v := range verdicts {
		f.inputs[i].apply(v)
	}
	return verdicts, ok
}

// ValidateAll validates every field, updates their visible state and
// reports whether all of them are valid.
func (f *Form) ValidateAll() bool {
	_, ok := f.Validate()
	return ok
}

// Entries returns one entry per named field, in document order.
func (f *Form) Entries() []domain.Field {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Field, 0, len(f.inputs))
	for _, in := range f.inputs {
		if in.Name == "" {
			continue
		}
		out = append(out, in.Field)
	}
	return out
}

// Reset clears every value. Selects go back to their first option.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, in := range f.inputs {
		in.Value = ""
		if in.Kind == domain.KindSelect && len(in.Options) > 0 {
			in.Value = in.Options[0]
		}
	}
}
