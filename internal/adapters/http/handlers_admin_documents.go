package web

import (
	"net/http"

	"sporthall/internal/application/orchestrators"
	"sporthall/internal/domain/document"
)

// handleUploadDocument handles POST /admin/documents/{type}.
func handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	docType, err := document.ParseDocType(r.PathValue("type"))
	if err != nil {
		fail(w, r, tabDocuments, err)
		return
	}
	// readUpload keeps one byte past the limit, so ValidateUpload sees an oversized PDF as such.
	data, mimeType, _, err := readUpload(r, "file", document.MaxBytes)
	if err != nil {
		fail(w, r, tabDocuments, document.ErrEmptyFile)
		return
	}

	err = orchestrators.ExecuteUploadDocument(r.Context(), orchestrators.UploadDocumentInput{
		DocType: docType, MimeType: mimeType, Data: data,
	}, orchestrators.UploadDocumentDeps{Uploader: stores.Uploads, Status: services.DocStatus})
	if err != nil {
		fail(w, r, tabDocuments, err)
		return
	}
	done(w, r, tabDocuments, okDocUploaded, map[string]any{"type": docType, "status": services.DocStatus.Get(docType)})
}

// handleDocumentStatus handles GET /admin/api/documents/status.
func handleDocumentStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, services.DocStatus.Snapshot())
}
