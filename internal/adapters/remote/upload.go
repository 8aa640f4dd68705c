package remote

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"

	"sporthall/internal/domain/document"
)

// UploadClient is the Document/Upload Store adapter.
type UploadClient struct {
	documentURL string
	imageURL    string
	http        *http.Client
}

// NewUploadClient creates an UploadClient.
// PRE: documentURL and imageURL are absolute
func NewUploadClient(documentURL, imageURL string, client *http.Client) *UploadClient {
	return &UploadClient{documentURL: documentURL, imageURL: imageURL, http: client}
}

// UploadDocument stores a PDF under its document type.
// PRE: pdf has passed document.ValidateUpload
func (c *UploadClient) UploadDocument(ctx context.Context, docType document.DocType, pdf []byte) error {
	body := map[string]string{
		"docType":  string(docType),
		"fileData": base64.StdEncoding.EncodeToString(pdf),
	}
	if err := doJSON(ctx, c.http, http.MethodPost, c.documentURL, body, nil); err != nil {
		return fmt.Errorf("upload document %s: %w", docType, err)
	}
	return nil
}

// UploadImage posts a base64 data URL and returns the public URL of the stored image.
// PRE: dataURL starts with "data:image/"
// POST: returned URL is non-empty
func (c *UploadClient) UploadImage(ctx context.Context, dataURL, filename string) (string, error) {
	body := map[string]string{"file": dataURL, "filename": filename}
	var resp struct {
		URL      string `json:"url"`
		Filename string `json:"filename"`
	}
	if err := doJSON(ctx, c.http, http.MethodPost, c.imageURL, body, &resp); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if resp.URL == "" {
		return "", fmt.Errorf("upload image: %w: missing url", ErrDecode)
	}
	return resp.URL, nil
}

// DocumentURL is the public download link for a document type.
func (c *UploadClient) DocumentURL(docType document.DocType) string {
	u, err := withQuery(c.documentURL, url.Values{"type": {string(docType)}})
	if err != nil {
		return c.documentURL
	}
	return u
}
