package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/csg33k/employee-intake/internal/adapters/httpsubmit"
	"github.com/csg33k/employee-intake/internal/config"
	"github.com/csg33k/employee-intake/internal/domain"
	"github.com/csg33k/employee-intake/internal/form"
	"github.com/csg33k/employee-intake/internal/handlers"
	"github.com/csg33k/employee-intake/internal/validation"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type memRepo struct {
	employees []domain.Employee
	err       error
}

func (m *memRepo) CreateEmployee(_ context.Context, e *domain.Employee) error {
	if m.err != nil {
		return m.err
	}
	e.ID = int64(len(m.employees) + 1)
	m.employees = append(m.employees, *e)
	return nil
}

func (m *memRepo) GetEmployee(_ context.Context, id int64) (*domain.Employee, error) {
	for i := range m.employees {
		if m.employees[i].ID == id {
			return &m.employees[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memRepo) ListEmployees(context.Context) ([]domain.Employee, error) {
	return m.employees, m.err
}

type memResumes struct {
	files map[string]string
}

func (m *memResumes) Save(filename string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if m.files == nil {
		m.files = make(map[string]string)
	}
	path := "uploads/" + filename
	m.files[path] = string(b)
	return path, nil
}

func (m *memResumes) Remove(path string) error {
	delete(m.files, path)
	return nil
}

var noLimit = config.Limiter{}

func newServer(repo *memRepo, resumes *memResumes) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handlers.New(repo, resumes, logger).Routes(noLimit)
}

func validValues() map[string]string {
	return map[string]string{
		"first_name":               "John E.",
		"last_name":                "Doe Jr.",
		"email":                    "john@example.com",
		"phone":                    "+1 234-567-8900",
		"preferred_contact_method": "phone",
		"address":                  "123 Main St",
		"address_2":                "Apt B",
		"city":                     "New York",
		"state":                    "NY",
		"zipcode":                  "12345",
	}
}

func multipartBody(t *testing.T, values map[string]string, resume string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range values {
		mw.WriteField(k, v)
	}
	if resume != "" {
		part, err := mw.CreateFormFile("resume", "cv.pdf")
		if err != nil {
			t.Fatal(err)
		}
		io.WriteString(part, resume)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestIndex_RendersForm(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(&memRepo{}, &memResumes{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`id="new-employee-form"`, `action="/submit-form"`, `id="form-errors"`, `id="zipcode-feedback"`} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestSubmitForm_JSONValid(t *testing.T) {
	repo, resumes := &memRepo{}, &memResumes{}
	body, ct := multipartBody(t, validValues(), "my resume")
	req := httptest.NewRequest(http.MethodPost, "/submit-form", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	newServer(repo, resumes).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: %d body: %s", rec.Code, rec.Body)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["redirect"] != domain.SuccessPath || resp["id"] != float64(1) {
		t.Errorf("response: %v", resp)
	}
	if len(repo.employees) != 1 {
		t.Fatalf("stored %d employees", len(repo.employees))
	}
	e := repo.employees[0]
	if e.Address != "123 Main St, Apt B" {
		t.Errorf("address: %q", e.Address)
	}
	if e.ResumePath != "uploads/cv.pdf" || resumes.files[e.ResumePath] != "my resume" {
		t.Errorf("resume: %q %v", e.ResumePath, resumes.files)
	}
}

func TestSubmitForm_JSONInvalid(t *testing.T) {
	repo := &memRepo{}
	values := validValues()
	values["email"] = "not-an-email"
	values["zipcode"] = "1234"
	values["preferred_contact_method"] = "carrier pigeon"
	body, ct := multipartBody(t, values, "")
	req := httptest.NewRequest(http.MethodPost, "/submit-form", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	newServer(repo, &memResumes{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: %d", rec.Code)
	}
	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"email":                    validation.MessageFor("email"),
		"zipcode":                  validation.MessageFor("zipcode"),
		"preferred_contact_method": validation.DefaultMessage,
	}
	if diff := cmp.Diff(want, resp.Errors); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	if len(repo.employees) != 0 {
		t.Error("invalid form must not be stored")
	}
}

func TestSubmitForm_BrowserRedirect(t *testing.T) {
	form := url.Values{}
	for k, v := range validValues() {
		form.Set(k, v)
	}
	req := httptest.NewRequest(http.MethodPost, "/submit-form", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	newServer(&memRepo{}, &memResumes{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != domain.SuccessPath {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestSubmitForm_BrowserInvalidRerenders(t *testing.T) {
	body, ct := multipartBody(t, map[string]string{"first_name": "John"}, "")
	req := httptest.NewRequest(http.MethodPost, "/submit-form", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	newServer(&memRepo{}, &memResumes{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: %d", rec.Code)
	}
	html := rec.Body.String()
	if !strings.Contains(html, `value="John"`) || !strings.Contains(html, "is-invalid") {
		t.Errorf("form not re-rendered with state:\n%s", html)
	}
}

func TestSubmitForm_StoreFailure(t *testing.T) {
	repo := &memRepo{err: errors.New("disk full")}
	body, ct := multipartBody(t, validValues(), "")
	req := httptest.NewRequest(http.MethodPost, "/submit-form", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	newServer(repo, &memResumes{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), "disk full") {
		t.Errorf("got %d %s", rec.Code, rec.Body)
	}
}

func TestSubmitForm_StoreFailureDropsResume(t *testing.T) {
	repo := &memRepo{err: errors.New("disk full")}
	resumes := &memResumes{}
	body, ct := multipartBody(t, validValues(), "%PDF-1.4")
	req := httptest.NewRequest(http.MethodPost, "/submit-form", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	newServer(repo, resumes).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("got %d %s", rec.Code, rec.Body)
	}
	if len(resumes.files) != 0 {
		t.Errorf("resume kept after failed insert: %v", resumes.files)
	}
}

func TestEmployeePDF(t *testing.T) {
	repo := &memRepo{employees: []domain.Employee{{ID: 1, FirstName: "Ada", LastName: "Lovelace"}}}
	srv := newServer(repo, &memResumes{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/1/pdf", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "application/pdf" {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/9/pdf", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing employee: %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := handlers.New(&memRepo{}, &memResumes{}, logger).Routes(config.Limiter{RPS: 0, Burst: 1, Enabled: true})

	codes := make([]int, 2)
	for i := range codes {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, domain.SuccessPath, nil))
		codes[i] = rec.Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes: %v", codes)
	}
}

type recordingUI struct {
	alerts []string
	nav    []string
}

func (u *recordingUI) Alert(msg string)     { u.alerts = append(u.alerts, msg) }
func (u *recordingUI) Navigate(path string) { u.nav = append(u.nav, path) }

// The client flow and the server agree end to end.
func TestClientSubmitsToServer(t *testing.T) {
	repo := &memRepo{}
	srv := httptest.NewServer(newServer(repo, &memResumes{}))
	defer srv.Close()

	ui := &recordingUI{}
	c := form.NewController(form.NewEmployeeForm(srv.URL+"/submit-form"), httpsubmit.New(srv.Client()), ui, slog.New(slog.NewTextHandler(io.Discard, nil)))
	for k, v := range validValues() {
		if err := c.Form().Set(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(repo.employees) != 1 {
		t.Fatalf("stored %d employees", len(repo.employees))
	}
	if len(ui.nav) != 1 || ui.nav[0] != domain.SuccessPath {
		t.Errorf("navigation: %v", ui.nav)
	}
	if repo.employees[0].ResumePath != "" {
		t.Errorf("no resume was attached, got %q", repo.employees[0].ResumePath)
	}
}
