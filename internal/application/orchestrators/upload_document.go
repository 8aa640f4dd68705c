package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"sporthall/internal/domain/document"
)

// DocumentUploader posts a PDF to the Upload Store.
type DocumentUploader interface {
	UploadDocument(ctx context.Context, docType document.DocType, pdf []byte) error
}

// StatusSetter records per-document upload status.
type StatusSetter interface {
	Set(d document.DocType, s document.Status)
}

// UploadDocumentInput carries one footer document.
type UploadDocumentInput struct {
	DocType  document.DocType
	MimeType string
	Data     []byte
}

// UploadDocumentDeps holds dependencies for UploadDocument.
type UploadDocumentDeps struct {
	Uploader DocumentUploader
	Status   StatusSetter
}

// ExecuteUploadDocument replaces one footer document.
// PRE: DocType is one of document.All
// POST: status moves uploading -> success|error and the tracker later resets it to idle
// INVARIANT: a non-PDF or oversized file never reaches the network and never changes the status
func ExecuteUploadDocument(ctx context.Context, input UploadDocumentInput, deps UploadDocumentDeps) error {
	if _, err := document.ParseDocType(string(input.DocType)); err != nil {
		return err
	}
	if err := document.ValidateUpload(input.MimeType, input.Data); err != nil {
		return err
	}

	deps.Status.Set(input.DocType, document.StatusUploading)
	if err := deps.Uploader.UploadDocument(ctx, input.DocType, input.Data); err != nil {
		deps.Status.Set(input.DocType, document.StatusError)
		slog.Error("document_upload_failed", "doc_type", input.DocType, "error", err)
		return fmt.Errorf("upload document: %w", err)
	}
	deps.Status.Set(input.DocType, document.StatusSuccess)
	slog.Info("document_uploaded", "doc_type", input.DocType, "bytes", len(input.Data))
	return nil
}
