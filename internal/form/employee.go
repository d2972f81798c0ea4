package form

import "github.com/csg33k/employee-intake/internal/domain"

// SubmitID is the id of the intake form's submit button.
const SubmitID = "submit"

// ContactMethods are the choices of preferred_contact_method. The first
// entry is the empty placeholder.
var ContactMethods = []string{"", "email", "phone", "text"}

// EmployeeInputs returns the fields of the new-employee form in document
// order.
func EmployeeInputs() []Input {
	text := func(name, label string, required bool) Input {
		return Input{Field: domain.Field{Name: name, Required: required, Kind: domain.KindInput}, Label: label}
	}
	return []Input{
		text("first_name", "First name (and middle)", true),
		text("last_name", "Last name (and suffix)", true),
		text("email", "Email", true),
		text("phone", "Phone", true),
		{
			Field:   domain.Field{Name: "preferred_contact_method", Required: true, Kind: domain.KindSelect},
			Label:   "Preferred contact method",
			Options: ContactMethods,
		},
		text("address", "Street address", true),
		text("address_2", "Address line 2", false),
		text("city", "City", true),
		text("state", "State", true),
		text("zipcode", "ZIP code", true),
		{Field: domain.Field{Name: "resume", Kind: domain.KindFile}, Label: "Resume"},
	}
}

// EmployeeControls returns the focusable controls of the new-employee form:
// every input followed by the submit button.
func EmployeeControls(inputs []Input) []domain.Control {
	out := make([]domain.Control, 0, len(inputs)+1)
	for _, in := range inputs {
		c := domain.Control{ID: in.Name, Tag: "input"}
		switch in.Kind {
		case domain.KindSelect:
			c.Tag = "select"
		case domain.KindFile:
			c.Type = "file"
		}
		out = append(out, c)
	}
	return append(out, domain.Control{ID: SubmitID, Tag: "button", Type: "submit"})
}

// NewEmployeeForm builds the intake form posting to action.
func NewEmployeeForm(action string) *Form {
	inputs := EmployeeInputs()
	return New(action, inputs, EmployeeControls(inputs))
}
