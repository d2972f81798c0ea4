package form_test

import (
	"testing"

	"github.com/csg33k/employee-intake/internal/domain"
	"github.com/csg33k/employee-intake/internal/form"
)

func intPtr(i int) *int { return &i }

func TestFocusables_Filter(t *testing.T) {
	controls := []domain.Control{
		{ID: "name", Tag: "input"},
		{ID: "off", Tag: "input", Disabled: true},
		{ID: "help", Tag: "a", Href: "/help"},
		{ID: "anchor", Tag: "a"},
		{ID: "card", Tag: "div", TabIndex: intPtr(0)},
		{ID: "skip", Tag: "div", TabIndex: intPtr(-1)},
		{ID: "notes", Tag: "textarea"},
		{ID: "go", Tag: "button", Type: "submit"},
	}
	f := form.New("/x", nil, controls)

	var got []string
	for _, c := range f.Focusables() {
		got = append(got, c.ID)
	}
	want := []string{"name", "help", "card", "notes", "go"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestNextFocus(t *testing.T) {
	f := form.NewEmployeeForm("/submit-form")
	cases := []struct {
		from string
		want string
	}{
		{"first_name", "last_name"},
		{"preferred_contact_method", "address"},
		{"resume", form.SubmitID},
		{form.SubmitID, "first_name"},
	}
	for _, tc := range cases {
		if err := f.Focus(tc.from); err != nil {
			t.Fatal(err)
		}
		next, ok := f.NextFocus()
		if !ok || next.ID != tc.want {
			t.Errorf("from %s: got %q, want %q", tc.from, next.ID, tc.want)
		}
		if active, _ := f.Active(); active.ID != tc.want {
			t.Errorf("active after move: %q", active.ID)
		}
	}
}

func TestNextFocus_SkipsDisabled(t *testing.T) {
	f := form.NewEmployeeForm("/submit-form")
	f.SetDisabled("last_name", true)
	f.Focus("first_name")
	if next, _ := f.NextFocus(); next.ID != "email" {
		t.Errorf("got %q, want email", next.ID)
	}
}

func TestNextFocus_NothingActive(t *testing.T) {
	f := form.NewEmployeeForm("/submit-form")
	if next, _ := f.NextFocus(); next.ID != "first_name" {
		t.Errorf("got %q, want first_name", next.ID)
	}
}

func TestNextFocus_Empty(t *testing.T) {
	f := form.New("/x", nil, nil)
	if _, ok := f.NextFocus(); ok {
		t.Error("expected no focus target")
	}
}
