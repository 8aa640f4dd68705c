package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"sporthall/internal/domain/content"
	"sporthall/internal/domain/gallery"
)

// Content store "type" discriminators.
const (
	typeContacts = "contacts"
	typeSports   = "sports"
	typeGallery  = "gallery"
)

// ContentClient is the Content Store adapter: contacts, sports and gallery photos.
type ContentClient struct {
	baseURL string
	http    *http.Client
}

// NewContentClient creates a ContentClient.
// PRE: baseURL is the absolute Content Store endpoint
func NewContentClient(baseURL string, client *http.Client) *ContentClient {
	return &ContentClient{baseURL: baseURL, http: client}
}

type typedPayload struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type contentWire struct {
	Contacts *content.Contact `json:"contacts"`
	Sports   []content.Sport  `json:"sports"`
}

type photoWire struct {
	ID          string  `json:"id,omitempty"`
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

func (w photoWire) toDomain() gallery.Photo {
	p := gallery.Photo{ID: w.ID, URL: w.URL, Title: w.Title}
	if w.Description != nil {
		p.Description = *w.Description
	}
	return p
}

func photoToWire(p gallery.Photo) photoWire {
	desc := p.Description
	return photoWire{ID: p.ID, URL: p.URL, Title: p.Title, Description: &desc}
}

// Load fetches contacts and sports.
// POST: nil slices are normalised to empty; a null contacts record becomes the zero Contact
func (c *ContentClient) Load(ctx context.Context) (content.Content, error) {
	var wire contentWire
	if err := doJSON(ctx, c.http, http.MethodGet, c.baseURL, nil, &wire); err != nil {
		return content.Content{}, fmt.Errorf("load content: %w", err)
	}
	out := content.Content{Sports: wire.Sports}
	if wire.Contacts != nil {
		out.Contacts = *wire.Contacts
	}
	if out.Sports == nil {
		out.Sports = []content.Sport{}
	}
	for i := range out.Sports {
		if out.Sports[i].Rules == nil {
			out.Sports[i].Rules = []string{}
		}
		if out.Sports[i].Safety == nil {
			out.Sports[i].Safety = []string{}
		}
	}
	return out, nil
}

// SaveContacts overwrites the singleton contacts record.
func (c *ContentClient) SaveContacts(ctx context.Context, contacts content.Contact) error {
	if err := doJSON(ctx, c.http, http.MethodPut, c.baseURL, typedPayload{Type: typeContacts, Data: contacts}, nil); err != nil {
		return fmt.Errorf("save contacts: %w", err)
	}
	return nil
}

// SaveSports overwrites every sport.
func (c *ContentClient) SaveSports(ctx context.Context, sports []content.Sport) error {
	if err := doJSON(ctx, c.http, http.MethodPut, c.baseURL, typedPayload{Type: typeSports, Data: sports}, nil); err != nil {
		return fmt.Errorf("save sports: %w", err)
	}
	return nil
}

// ListPhotos fetches all gallery photos, newest first as ordered by the store.
func (c *ContentClient) ListPhotos(ctx context.Context) ([]gallery.Photo, error) {
	u, err := withQuery(c.baseURL, url.Values{"type": {typeGallery}})
	if err != nil {
		return nil, err
	}
	var wire []photoWire
	if err := doJSON(ctx, c.http, http.MethodGet, u, nil, &wire); err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	out := make([]gallery.Photo, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

// AddPhoto creates a photo and returns it with the store-assigned id.
// PRE: p is valid; p.ID is ignored
func (c *ContentClient) AddPhoto(ctx context.Context, p gallery.Photo) (gallery.Photo, error) {
	data := photoToWire(p)
	data.ID = ""
	var created photoWire
	if err := doJSON(ctx, c.http, http.MethodPost, c.baseURL, typedPayload{Type: typeGallery, Data: data}, &created); err != nil {
		return gallery.Photo{}, fmt.Errorf("add photo: %w", err)
	}
	if created.ID == "" {
		return gallery.Photo{}, fmt.Errorf("add photo: %w: missing id", ErrDecode)
	}
	return created.toDomain(), nil
}

// UpdatePhoto replaces url, title and description of an existing photo.
// PRE: p.ID is non-empty
func (c *ContentClient) UpdatePhoto(ctx context.Context, p gallery.Photo) error {
	if err := doJSON(ctx, c.http, http.MethodPut, c.baseURL, typedPayload{Type: typeGallery, Data: photoToWire(p)}, nil); err != nil {
		return fmt.Errorf("update photo %s: %w", p.ID, err)
	}
	return nil
}

// DeletePhoto removes a photo.
func (c *ContentClient) DeletePhoto(ctx context.Context, id string) error {
	u, err := withQuery(c.baseURL, url.Values{"type": {typeGallery}, "id": {id}})
	if err != nil {
		return err
	}
	if err := doJSON(ctx, c.http, http.MethodDelete, u, nil, nil); err != nil {
		return fmt.Errorf("delete photo %s: %w", id, err)
	}
	return nil
}
