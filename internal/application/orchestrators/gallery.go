package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"sporthall/internal/adapters/imaging"
	"sporthall/internal/application/events"
	"sporthall/internal/domain/gallery"
)

// GalleryStore is the gallery part of the Content Store.
type GalleryStore interface {
	ListPhotos(ctx context.Context) ([]gallery.Photo, error)
	AddPhoto(ctx context.Context, p gallery.Photo) (gallery.Photo, error)
	UpdatePhoto(ctx context.Context, p gallery.Photo) error
	DeletePhoto(ctx context.Context, id string) error
}

// RefreshPublisher broadcasts a refresh signal on a topic.
type RefreshPublisher interface {
	Publish(topic string) events.Event
}

// GalleryInvalidator drops any cached gallery copy.
type GalleryInvalidator interface {
	InvalidateGallery()
}

// GalleryDeps holds dependencies for the gallery orchestrators.
type GalleryDeps struct {
	Store  GalleryStore
	Events RefreshPublisher   // optional
	Cache  GalleryInvalidator // optional
}

// ErrPhotoNotFound means the id is not in the current gallery.
var ErrPhotoNotFound = errors.New("photo not found")

// AddPhotoInput carries a new gallery record.
type AddPhotoInput struct {
	URL         string
	Title       string
	Description string
}

// ExecuteAddPhoto creates a gallery record.
// PRE: URL and Title are non-blank
// POST: on success every open view receives a gallery refresh
func ExecuteAddPhoto(ctx context.Context, input AddPhotoInput, deps GalleryDeps) (gallery.Photo, error) {
	p := gallery.Photo{
		URL:         strings.TrimSpace(input.URL),
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
	}
	if err := p.Validate(); err != nil {
		return gallery.Photo{}, err
	}

	created, err := deps.Store.AddPhoto(ctx, p)
	if err != nil {
		slog.Error("gallery_photo_add_failed", "error", err)
		return gallery.Photo{}, fmt.Errorf("add photo: %w", err)
	}
	slog.Info("gallery_photo_added", "photo_id", created.ID)
	notifyGallery(deps)
	return created, nil
}

// UpdatePhotoInput carries a partial update for one photo.
type UpdatePhotoInput struct {
	ID    string
	Patch gallery.Patch
}

// ExecuteUpdatePhoto applies a partial update to an existing photo and PUTs the full record.
// PRE: ID is non-empty
// POST: on success every open view receives a gallery refresh
func ExecuteUpdatePhoto(ctx context.Context, input UpdatePhotoInput, deps GalleryDeps) (gallery.Photo, error) {
	if input.ID == "" {
		return gallery.Photo{}, gallery.ErrEmptyID
	}
	photos, err := deps.Store.ListPhotos(ctx)
	if err != nil {
		return gallery.Photo{}, fmt.Errorf("list photos: %w", err)
	}
	current, ok := gallery.Find(photos, input.ID)
	if !ok {
		return gallery.Photo{}, ErrPhotoNotFound
	}

	updated := input.Patch.Apply(current)
	if err := updated.Validate(); err != nil {
		return gallery.Photo{}, err
	}
	if err := deps.Store.UpdatePhoto(ctx, updated); err != nil {
		slog.Error("gallery_photo_update_failed", "photo_id", input.ID, "error", err)
		return gallery.Photo{}, fmt.Errorf("update photo: %w", err)
	}
	slog.Info("gallery_photo_updated", "photo_id", input.ID)
	notifyGallery(deps)
	return updated, nil
}

// ExecuteDeletePhoto removes a photo.
// POST: on success every open view receives a gallery refresh
func ExecuteDeletePhoto(ctx context.Context, id string, deps GalleryDeps) error {
	if id == "" {
		return gallery.ErrEmptyID
	}
	if err := deps.Store.DeletePhoto(ctx, id); err != nil {
		slog.Error("gallery_photo_delete_failed", "photo_id", id, "error", err)
		return fmt.Errorf("delete photo: %w", err)
	}
	slog.Info("gallery_photo_deleted", "photo_id", id)
	notifyGallery(deps)
	return nil
}

func notifyGallery(deps GalleryDeps) {
	if deps.Cache != nil {
		deps.Cache.InvalidateGallery()
	}
	if deps.Events != nil {
		deps.Events.Publish(events.TopicGallery)
	}
}

// ImageUploader posts a prepared image to the Upload Store.
type ImageUploader interface {
	UploadImage(ctx context.Context, dataURL, filename string) (string, error)
}

// UploadImageInput carries a raw image from the admin form.
type UploadImageInput struct {
	Data     []byte
	MimeType string
	Filename string
}

// UploadImageDeps holds dependencies for UploadImage.
type UploadImageDeps struct {
	Uploader ImageUploader
}

// UploadImageResult is the hosted copy of an uploaded image.
type UploadImageResult struct {
	URL      string
	Filename string
	Width    int
	Height   int
}

// ExecuteUploadImage resizes and re-encodes an image, then posts it to the Upload Store.
// PRE: none
// POST: returns the public URL of the stored JPEG
// INVARIANT: a wrong type or an oversized file is rejected with zero network calls
func ExecuteUploadImage(ctx context.Context, input UploadImageInput, deps UploadImageDeps) (UploadImageResult, error) {
	prepared, err := imaging.PrepareImage(input.Data, input.MimeType)
	if err != nil {
		return UploadImageResult{}, err
	}

	filename := jpegFilename(input.Filename)
	url, err := deps.Uploader.UploadImage(ctx, prepared.DataURL, filename)
	if err != nil {
		slog.Error("image_upload_failed", "filename", filename, "error", err)
		return UploadImageResult{}, fmt.Errorf("upload image: %w", err)
	}
	slog.Info("image_uploaded", "filename", filename, "bytes", prepared.Bytes, "width", prepared.Width, "height", prepared.Height)
	return UploadImageResult{URL: url, Filename: filename, Width: prepared.Width, Height: prepared.Height}, nil
}

// jpegFilename keeps the client's base name when it has one and always ends in .jpg.
func jpegFilename(name string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		base = uuid.NewString()
	}
	return base + ".jpg"
}
