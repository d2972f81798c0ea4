package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func validArgs(action string) []string {
	return []string{
		"--action", action,
		"-f", "first_name=John",
		"-f", "last_name=Doe",
		"-f", "email=john@example.com",
		"-f", "phone=(234) 567-8900",
		"-f", "preferred_contact_method=email",
		"-f", "address=123 Main St",
		"-f", "city=Springfield",
		"-f", "state=IL",
		"-f", "zipcode=62701",
	}
}

func TestSubmit_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id": 1}`)
	}))
	defer srv.Close()

	out, _, err := run(t, validArgs(srv.URL+"/submit-form")...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Form submitted successfully!") || !strings.Contains(out, "-> "+srv.URL+"/submission-success") {
		t.Errorf("output:\n%s", out)
	}
}

func TestSubmit_InvalidListsFields(t *testing.T) {
	out, errOut, err := run(t, "--action", "http://127.0.0.1:1/submit-form", "-f", "email=nope")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(out, "Please fill out all required fields") {
		t.Errorf("stdout:\n%s", out)
	}
	if !strings.Contains(errOut, "email: Invalid email format") {
		t.Errorf("stderr:\n%s", errOut)
	}
}

func TestSubmit_BadFlag(t *testing.T) {
	if _, _, err := run(t, "-f", "no-equals"); err == nil {
		t.Error("expected error")
	}
}
