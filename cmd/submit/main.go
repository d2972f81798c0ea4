// Command submit fills in the new-employee form from flags and runs the
// same validate-then-post flow a browser would.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/csg33k/employee-intake/internal/adapters/httpsubmit"
	"github.com/csg33k/employee-intake/internal/form"
)

// terminalUI prints alerts and resolves navigation against the action URL.
type terminalUI struct {
	out    io.Writer
	action string
}

func (u terminalUI) Alert(msg string) { fmt.Fprintln(u.out, msg) }

func (u terminalUI) Navigate(path string) {
	target := path
	if base, err := url.Parse(u.action); err == nil {
		if ref, err := base.Parse(path); err == nil {
			target = ref.String()
		}
	}
	fmt.Fprintln(u.out, "->", target)
}

func newRootCmd() *cobra.Command {
	var (
		action  string
		fields  []string
		files   []string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:           "submit",
		Short:         "Validate and submit a new-employee form",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			f := form.NewEmployeeForm(action)
			for _, kv := range append(fields, files...) {
				name, value, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("expected name=value, got %q", kv)
				}
				if err := f.Set(name, value); err != nil {
					return err
				}
			}

			ui := terminalUI{out: cmd.OutOrStdout(), action: action}
			c := form.NewController(f, httpsubmit.New(nil), ui, logger)
			if err := c.Submit(cmd.Context()); err != nil {
				for _, in := range f.Inputs() {
					if in.Feedback.Visible {
						fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", in.Name, in.Feedback.Text)
					}
				}
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&action, "action", "http://localhost:8080/submit-form", "form action URL")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "field value as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&files, "file", nil, "file field as name=path (repeatable)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
