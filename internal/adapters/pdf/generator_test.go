package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/csg33k/employee-intake/internal/adapters/pdf"
	"github.com/csg33k/employee-intake/internal/domain"
)

func TestGeneratePDF(t *testing.T) {
	e := &domain.Employee{
		ID:        1,
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Phone:     "2345678900",
		Address:   "123 Main St",
		City:      "Springfield",
		State:     "IL",
		Zipcode:   "62701",
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	var buf bytes.Buffer
	if err := pdf.GeneratePDF(e, &buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not look like a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}
