// Package httpsubmit posts form entries as multipart/form-data and decodes
// the JSON reply.
package httpsubmit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/csg33k/employee-intake/internal/domain"
)

type Submitter struct {
	client *http.Client
}

// New returns a Submitter using client, or http.DefaultClient when nil.
// No timeout is added; the caller's context bounds the request.
func New(client *http.Client) *Submitter {
	if client == nil {
		client = http.DefaultClient
	}
	return &Submitter{client: client}
}

// Submit sends one POST to action. Satisfies ports.FormSubmitter.
func (s *Submitter) Submit(ctx context.Context, action string, entries []domain.Field) (map[string]any, error) {
	body, contentType, err := encode(entries)
	if err != nil {
		return nil, &domain.SubmissionError{Op: "encode", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, action, body)
	if err != nil {
		return nil, &domain.SubmissionError{Op: "post", Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &domain.SubmissionError{Op: "post", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &domain.SubmissionError{Op: "status", StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &domain.SubmissionError{Op: "decode", StatusCode: resp.StatusCode, Status: resp.Status, Err: err}
	}
	return data, nil
}

// encode writes one part per entry. File entries with an empty value are
// sent as an empty file part, the way a browser sends an untouched file input.
func encode(entries []domain.Field) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, e := range entries {
		if e.Kind != domain.KindFile {
			if err := mw.WriteField(e.Name, e.Value); err != nil {
				return nil, "", err
			}
			continue
		}
		if err := writeFile(mw, e); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

func writeFile(mw *multipart.Writer, e domain.Field) error {
	if e.Value == "" {
		_, err := mw.CreateFormFile(e.Name, "")
		return err
	}
	f, err := os.Open(e.Value)
	if err != nil {
		return fmt.Errorf("open %s: %w", e.Name, err)
	}
	defer f.Close()
	part, err := mw.CreateFormFile(e.Name, filepath.Base(e.Value))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, f)
	return err
}
