package form

import (
	"fmt"

	"github.com/csg33k/employee-intake/internal/domain"
)

func focusable(c domain.Control) bool {
	if c.Disabled {
		return false
	}
	switch c.Tag {
	case "button", "input", "select", "textarea":
		return true
	}
	if c.Href != "" {
		return true
	}
	return c.TabIndex != nil && *c.TabIndex != -1
}

// Focusables returns the enabled focusable controls in document order.
func (f *Form) Focusables() []domain.Control {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focusables()
}

func (f *Form) focusables() []domain.Control {
	var out []domain.Control
	for _, c := range f.controls {
		if focusable(c) {
			out = append(out, c)
		}
	}
	return out
}

// Focus moves focus to the control with the given id.
func (f *Form) Focus(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.controls {
		if c.ID == id {
			f.active = id
			return nil
		}
	}
	return fmt.Errorf("form %s: no control %q", f.ID, id)
}

// Active returns the focused control, if any.
func (f *Form) Active() (domain.Control, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.controls {
		if c.ID == f.active {
			return c, true
		}
	}
	return domain.Control{}, false
}

// SetDisabled enables or disables a control.
func (f *Form) SetDisabled(id string, disabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.controls {
		if f.controls[i].ID == id {
			f.controls[i].Disabled = disabled
			return nil
		}
	}
	return fmt.Errorf("form %s: no control %q", f.ID, id)
}

// NextFocus moves focus to the focusable control after the active one,
// wrapping to the first. When nothing focusable is active the first
// control receives focus.
func (f *Form) NextFocus() (domain.Control, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.focusables()
	if len(list) == 0 {
		return domain.Control{}, false
	}
	cur := -1
	for i, c := range list {
		if c.ID == f.active {
			cur = i
			break
		}
	}
	next := list[(cur+1)%len(list)]
	f.active = next.ID
	return next, true
}
