// Package archivo manages the uploaded PDF files behind the auxiliary API.
package archivo

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/compras/backend/internal/domain/shared"
)

const pdfContentType = "application/pdf"

// Service validates filenames and drives the configured store.
type Service struct {
	store         Store
	maxUploadSize int64
}

// NewService creates a new Service
func NewService(store Store, maxUploadSize int64) *Service {
	return &Service{store: store, maxUploadSize: maxUploadSize}
}

// ValidateFilename rejects names that are empty, carry path separators or
// any traversal segment. Valid names resolve to a direct child of the
// upload directory.
func ValidateFilename(filename string) error {
	if strings.TrimSpace(filename) == "" {
		return shared.NewDomainError("MISSING_FILENAME", "Filename is required")
	}
	if strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
		return shared.NewDomainError("INVALID_FILENAME", "Filename must not contain path separators or traversal segments")
	}
	return nil
}

// Delete removes an uploaded file. An already-absent file answers
// shared.ErrNotFound so retries read it as "already gone".
func (s *Service) Delete(ctx context.Context, filename string) error {
	if err := ValidateFilename(filename); err != nil {
		return err
	}
	return s.store.Delete(ctx, filename)
}

// Upload stores a PDF under a fresh server-side name and returns it.
// The client's filename is never used as the storage key.
func (s *Service) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	if size <= 0 {
		return "", shared.NewDomainError("EMPTY_FILE", "Uploaded file is empty")
	}
	if s.maxUploadSize > 0 && size > s.maxUploadSize {
		return "", shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("Uploaded file exceeds the %d byte limit", s.maxUploadSize))
	}
	if mediaType := strings.TrimSpace(strings.Split(contentType, ";")[0]); mediaType != pdfContentType {
		return "", shared.NewDomainError("INVALID_CONTENT_TYPE", "Only PDF uploads are accepted")
	}

	filename := uuid.New().String() + ".pdf"
	if err := s.store.Save(ctx, filename, r, pdfContentType); err != nil {
		return "", err
	}
	return filename, nil
}

// Save stores already-rendered PDF bytes (the dashboard exporter) under
// the given flat filename.
func (s *Service) Save(ctx context.Context, filename string, r io.Reader) error {
	if err := ValidateFilename(filename); err != nil {
		return err
	}
	return s.store.Save(ctx, filename, r, pdfContentType)
}
