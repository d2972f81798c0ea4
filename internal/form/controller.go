package form

import (
	"context"
	"errors"
	"log/slog"

	"github.com/csg33k/employee-intake/internal/domain"
	"github.com/csg33k/employee-intake/internal/faults"
	"github.com/csg33k/employee-intake/internal/ports"
)

const (
	AlertInvalid = "Please fill out all required fields and correct any errors before submitting."
	AlertSuccess = "Form submitted successfully!"
	AlertFailure = "An error occurred while submitting the form. Please try again."
)

// ErrInvalid is returned by Submit when at least one field failed validation.
var ErrInvalid = errors.New("form has invalid fields")

// Controller dispatches user events to a Form.
type Controller struct {
	form      *Form
	submitter ports.FormSubmitter
	ui        ports.UI
	logger    *slog.Logger
}

func NewController(f *Form, submitter ports.FormSubmitter, ui ports.UI, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{form: f, submitter: submitter, ui: ui, logger: logger}
}

// Form returns the controlled form.
func (c *Controller) Form() *Form { return c.form }

// Blur validates the field that lost focus.
func (c *Controller) Blur(name string) {
	faults.Guard(c.logger, "blur", func() {
		if _, err := c.form.Blur(name); err != nil {
			c.logger.Warn("blur on unknown field", "field", name, "err", err)
		}
	})
}

// KeyDown handles a key pressed inside the form and reports whether the
// default action was prevented. Enter on any control but the submit button
// advances focus instead of submitting.
func (c *Controller) KeyDown(ctx context.Context, key string) (prevented bool) {
	if key != "Enter" {
		return false
	}
	if active, ok := c.form.Active(); ok && active.IsSubmit() {
		faults.Guard(c.logger, "submit", func() { c.Submit(ctx) })
		return false
	}
	faults.Guard(c.logger, "keydown", func() {
		if next, ok := c.form.NextFocus(); ok {
			c.logger.Debug("focus moved", "to", next.ID)
		}
	})
	return true
}

// Submit validates every field and, when all pass, posts the form once.
// On success the form is reset and the UI navigates to the success page.
func (c *Controller) Submit(ctx context.Context) error {
	if !c.form.ValidateAll() {
		c.ui.Alert(AlertInvalid)
		return ErrInvalid
	}

	data, err := c.submitter.Submit(ctx, c.form.Action, c.form.Entries())
	if err != nil {
		c.logger.Error("form submission failed", "action", c.form.Action, "err", err)
		c.ui.Alert(AlertFailure)
		return err
	}

	c.logger.Info("form submitted", "action", c.form.Action, "response", data)
	c.ui.Alert(AlertSuccess)
	c.form.Reset()
	c.ui.Navigate(domain.SuccessPath)
	return nil
}

// SubmitAsync runs Submit in the background and returns a channel that
// closes when it is done. Submit already reports its own failures, so only
// a panic surfaces as an unhandled rejection.
func (c *Controller) SubmitAsync(ctx context.Context) <-chan struct{} {
	return faults.Go(c.logger, func() error {
		_ = c.Submit(ctx)
		return nil
	})
}
