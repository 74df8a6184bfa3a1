// Package services holds application services shared by the service
// request use cases.
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"

	"servicedesk/internal/domain/servicerequest"
	"servicedesk/internal/shared/logger"
)

// Upload is one file received with a create request. Open is called once.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// sniffLen is how much of an upload is inspected when the client sent no
// specific content type.
const sniffLen = 3072

// AttachmentStore keeps attachment blobs and their metadata records in
// step: a record exists only for a blob that was written, and a blob is
// removed before its record.
type AttachmentStore struct {
	repo   servicerequest.AttachmentRepository
	blobs  servicerequest.BlobStorage
	logger logger.Interface
}

func NewAttachmentStore(
	repo servicerequest.AttachmentRepository,
	blobs servicerequest.BlobStorage,
	logger logger.Interface,
) *AttachmentStore {
	return &AttachmentStore{
		repo:   repo,
		blobs:  blobs,
		logger: logger,
	}
}

// Store writes the blob for upload, then records its metadata under
// serviceRequestID. The blob is removed again when the record cannot be
// written.
func (s *AttachmentStore) Store(ctx context.Context, serviceRequestID uint, upload Upload) (*servicerequest.Attachment, error) {
	content, err := upload.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %q: %w", upload.FileName, err)
	}
	defer content.Close()

	contentType, body, err := sniffContentType(upload.ContentType, content)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %q: %w", upload.FileName, err)
	}

	a, err := servicerequest.NewAttachment(serviceRequestID, upload.FileName, contentType, upload.Size)
	if err != nil {
		return nil, err
	}

	if err := s.blobs.Put(ctx, a.StorageKey(), body, upload.Size, a.ContentType()); err != nil {
		s.logger.Errorw("failed to write attachment blob", "key", a.StorageKey(), "error", err)
		return nil, fmt.Errorf("failed to write attachment blob: %w", err)
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Errorw("failed to save attachment record, removing blob", "key", a.StorageKey(), "error", err)
		if delErr := s.blobs.Delete(context.WithoutCancel(ctx), a.StorageKey()); delErr != nil {
			s.logger.Warnw("failed to remove orphaned attachment blob", "key", a.StorageKey(), "error", delErr)
		}
		return nil, fmt.Errorf("failed to save attachment: %w", err)
	}

	s.logger.Infow("attachment stored",
		"attachment_sid", a.SID(),
		"service_request_id", serviceRequestID,
		"size", upload.Size,
	)
	return a, nil
}

// sniffContentType keeps a declared type unless it is empty or the generic
// octet-stream, in which case the type is detected from the first bytes.
// The returned reader yields the full content.
func sniffContentType(declared string, r io.Reader) (string, io.Reader, error) {
	if declared != "" && declared != "application/octet-stream" {
		return declared, r, nil
	}
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, err
	}
	head = head[:n]
	return mimetype.Detect(head).String(), io.MultiReader(bytes.NewReader(head), r), nil
}

// Delete removes a single attachment: its blob and then its record. A blob
// that is already gone is not an error; a missing record is. Deleting a
// whole request goes through DeleteBlob per attachment instead, so blob
// failures never abort the transaction that removes the records.
func (s *AttachmentStore) Delete(ctx context.Context, attachmentID uint) error {
	a, err := s.repo.GetByID(ctx, attachmentID)
	if err != nil {
		return fmt.Errorf("failed to load attachment: %w", err)
	}
	if a == nil {
		return fmt.Errorf("attachment %d not found", attachmentID)
	}

	if err := s.DeleteBlob(ctx, a); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, a.ID()); err != nil {
		return fmt.Errorf("failed to delete attachment record: %w", err)
	}

	s.logger.Infow("attachment deleted", "attachment_sid", a.SID())
	return nil
}

// DeleteBlob removes only the stored bytes of a. It is idempotent.
func (s *AttachmentStore) DeleteBlob(ctx context.Context, a *servicerequest.Attachment) error {
	if err := s.blobs.Delete(ctx, a.StorageKey()); err != nil {
		return fmt.Errorf("failed to delete attachment blob %s: %w", a.StorageKey(), err)
	}
	return nil
}

// Retrieve opens the blob of a. A blob missing behind an existing record
// yields servicerequest.ErrFileMissing.
func (s *AttachmentStore) Retrieve(ctx context.Context, a *servicerequest.Attachment) (io.ReadCloser, error) {
	rc, err := s.blobs.Open(ctx, a.StorageKey())
	if err != nil {
		if errors.Is(err, servicerequest.ErrBlobNotFound) {
			s.logger.Errorw("attachment blob missing for existing record",
				"attachment_sid", a.SID(),
				"key", a.StorageKey(),
			)
			return nil, fmt.Errorf("%w: %s", servicerequest.ErrFileMissing, a.SID())
		}
		return nil, fmt.Errorf("failed to open attachment blob: %w", err)
	}
	return rc, nil
}
