package ports

import (
	"context"
	"io"

	"github.com/csg33k/employee-intake/internal/domain"
)

// EmployeeRepository defines persistence operations.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, e *domain.Employee) error
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}

// ResumeStore keeps uploaded resume files.
type ResumeStore interface {
	// Save copies r into the store and returns the stored path.
	Save(filename string, r io.Reader) (string, error)
	// Remove deletes a path previously returned by Save.
	Remove(path string) error
}

// FormSubmitter sends form entries to an action URL.
type FormSubmitter interface {
	// Submit issues a single POST and returns the decoded JSON body.
	// Every failure is reported as *domain.SubmissionError.
	Submit(ctx context.Context, action string, entries []domain.Field) (map[string]any, error)
}

// UI renders the user-facing effects of the form flows.
type UI interface {
	// Alert shows a blocking message to the user.
	Alert(msg string)
	// Navigate moves the user to path.
	Navigate(path string)
}
