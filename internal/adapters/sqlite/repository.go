package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/csg33k/employee-intake/internal/domain"
)

type Repository struct {
	db *sql.DB
}

// New opens the SQLite database. Schema migrations are managed by dbmate;
// run `dbmate up` before starting the server.
func New(dsn string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

// Close releases the underlying database handle.
func (r *Repository) Close() error { return r.db.Close() }

// Exec runs raw SQL, used to apply migrations in tests.
func (r *Repository) Exec(ctx context.Context, query string) error {
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// ── Employees ─────────────────────────────────────────────────────────────────

func (r *Repository) CreateEmployee(ctx context.Context, e *domain.Employee) error {
	e.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO employees (
			first_name, last_name, email, phone, preferred_contact_method,
			address, city, state, zipcode, resume_path, created_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		e.FirstName, e.LastName, e.Email, e.Phone, e.PreferredContactMethod,
		e.Address, e.City, e.State, e.Zipcode, e.ResumePath, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	id, _ := res.LastInsertId()
	e.ID = id
	return nil
}

func (r *Repository) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	e := &domain.Employee{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, phone, preferred_contact_method,
		       address, city, state, zipcode, resume_path, created_at
		FROM employees WHERE id=?`, id).Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.PreferredContactMethod,
		&e.Address, &e.City, &e.State, &e.Zipcode, &e.ResumePath, &e.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *Repository) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, email, created_at
		FROM employees ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
