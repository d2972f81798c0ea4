package filestore_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/csg33k/employee-intake/internal/adapters/filestore"
)

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := filestore.New(dir)
	if err != nil {
		t.Fatal(err)
	}

	p1, err := s.Save("../../etc/My CV.PDF", strings.NewReader("resume"))
	if err != nil {
		t.Fatal(err)
	}
	p2, err := s.Save("My CV.PDF", strings.NewReader("resume"))
	if err != nil {
		t.Fatal(err)
	}
	if p1 == p2 {
		t.Error("stored names must be unique")
	}
	if filepath.Dir(p1) != dir || filepath.Ext(p1) != ".pdf" {
		t.Errorf("unexpected path %s", p1)
	}
	b, err := os.ReadFile(p1)
	if err != nil || string(b) != "resume" {
		t.Errorf("content: %q %v", b, err)
	}
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	s, err := filestore.New(dir)
	if err != nil {
		t.Fatal(err)
	}
	p, err := s.Save("cv.pdf", strings.NewReader("resume"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Remove(p); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Errorf("expected %s to be gone, stat err = %v", p, err)
	}
	if err := s.Remove(p); err != nil {
		t.Errorf("second remove: %v", err)
	}

	outside := filepath.Join(t.TempDir(), "keep.pdf")
	if err := os.WriteFile(outside, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove(outside); err == nil {
		t.Error("expected error removing a file outside the store")
	}
	if _, err := os.Stat(outside); err != nil {
		t.Errorf("file outside the store was touched: %v", err)
	}
}
