package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"mime/multipart"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/justinas/alice"
	"github.com/microcosm-cc/bluemonday"

	"github.com/csg33k/employee-intake/internal/adapters/pdf"
	"github.com/csg33k/employee-intake/internal/config"
	"github.com/csg33k/employee-intake/internal/domain"
	"github.com/csg33k/employee-intake/internal/faults"
	"github.com/csg33k/employee-intake/internal/form"
	"github.com/csg33k/employee-intake/internal/ports"
	"github.com/csg33k/employee-intake/internal/templates"
	"github.com/csg33k/employee-intake/internal/validation"
)

const (
	submitPath = "/submit-form"
	maxUpload  = 10 << 20
	pageTitle  = "New Employee"
)

type Handler struct {
	repo     ports.EmployeeRepository
	resumes  ports.ResumeStore
	logger   *slog.Logger
	sanitize *bluemonday.Policy
}

func New(repo ports.EmployeeRepository, resumes ports.ResumeStore, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		repo:     repo,
		resumes:  resumes,
		logger:   logger,
		sanitize: bluemonday.StrictPolicy(),
	}
}

func (h *Handler) Routes(limit config.Limiter) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.index)
	mux.HandleFunc("POST "+submitPath, h.submitForm)
	mux.HandleFunc("GET "+domain.SuccessPath, h.submissionSuccess)
	mux.HandleFunc("GET /employees", h.listEmployees)
	mux.HandleFunc("GET /employees/{id}/pdf", h.employeePDF)

	standard := alice.New(
		faults.Recover(h.logger),
		h.logRequest,
		newRateLimiter(limit, h.logger).middleware,
	)
	return standard.Then(mux)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, templates.Page(pageTitle, templates.EmployeeForm(form.NewEmployeeForm(submitPath))))
}

// submitForm validates the posted intake form with the same rules the
// client uses and stores the employee. JSON clients get JSON back; browsers
// get a redirect or the re-rendered form.
func (h *Handler) submitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		http.Error(w, err.Error(), 400)
		return
	}

	f := form.NewEmployeeForm(submitPath)
	for _, in := range f.Inputs() {
		if in.Kind == domain.KindFile {
			continue
		}
		v := r.FormValue(in.Name)
		if in.Kind == domain.KindSelect && !slices.Contains(in.Options, v) {
			v = ""
		}
		f.Set(in.Name, v)
	}

	file, hdr, err := r.FormFile("resume")
	switch {
	case err == nil:
		defer file.Close()
		f.Set("resume", hdr.Filename)
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		http.Error(w, err.Error(), 400)
		return
	}

	if verdicts, ok := f.Validate(); !ok {
		h.rejectInvalid(w, r, f, validation.Errors(verdicts))
		return
	}

	e := h.employeeFrom(f)
	if file != nil {
		if e.ResumePath, err = h.saveResume(hdr, file); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	if err := h.repo.CreateEmployee(r.Context(), e); err != nil {
		if e.ResumePath != "" {
			if rmErr := h.resumes.Remove(e.ResumePath); rmErr != nil {
				h.logger.Error("remove orphaned resume", "path", e.ResumePath, "err", rmErr)
			}
		}
		h.fail(w, r, err)
		return
	}
	h.logger.Info("employee received", "id", e.ID, "email", e.Email)

	if wantsJSON(r) {
		writeJSON(w, http.StatusCreated, map[string]any{"id": e.ID, "redirect": domain.SuccessPath})
		return
	}
	http.Redirect(w, r, domain.SuccessPath, http.StatusSeeOther)
}

func (h *Handler) saveResume(hdr *multipart.FileHeader, file multipart.File) (string, error) {
	if h.resumes == nil {
		return "", errors.New("resume uploads are not configured")
	}
	return h.resumes.Save(hdr.Filename, file)
}

func (h *Handler) rejectInvalid(w http.ResponseWriter, r *http.Request, f *form.Form, errs map[string]string) {
	h.logger.Info("intake form rejected", "fields", len(errs))
	if wantsJSON(r) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		return
	}
	render(w, r, http.StatusUnprocessableEntity, templates.Page(pageTitle, templates.EmployeeForm(f)))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("store employee", "err", err)
	msg := fmt.Sprintf("An error occurred. Please try again. Error: %v", err)
	if wantsJSON(r) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": msg})
		return
	}
	render(w, r, http.StatusInternalServerError, templates.Page("Error", templates.Error(msg)))
}

// employeeFrom maps a validated form onto an Employee with markup stripped
// from every value. address_2, when given, is appended to address.
func (h *Handler) employeeFrom(f *form.Form) *domain.Employee {
	v := func(name string) string {
		return html.UnescapeString(h.sanitize.Sanitize(strings.TrimSpace(f.Value(name))))
	}
	address := v("address")
	if extra := v("address_2"); extra != "" {
		address += ", " + extra
	}
	return &domain.Employee{
		FirstName:              v("first_name"),
		LastName:               v("last_name"),
		Email:                  v("email"),
		Phone:                  v("phone"),
		PreferredContactMethod: v("preferred_contact_method"),
		Address:                address,
		City:                   v("city"),
		State:                  v("state"),
		Zipcode:                v("zipcode"),
	}
}

func (h *Handler) submissionSuccess(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, templates.Page("Submission received", templates.Success()))
}

func (h *Handler) listEmployees(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.ListEmployees(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	render(w, r, http.StatusOK, templates.Page("Employees", templates.EmployeeList(list)))
}

func (h *Handler) employeePDF(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", 400)
		return
	}
	e, err := h.repo.GetEmployee(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	var buf bytes.Buffer
	if err := pdf.GeneratePDF(e, &buf); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	filename := fmt.Sprintf("employee_%d_intake.pdf", e.ID)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write(buf.Bytes())
}

// render writes a templ component to the response.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(r.PathValue(key), 10, 64)
}
