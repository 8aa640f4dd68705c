package web

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"sporthall/internal/application/orchestrators"
	"sporthall/internal/domain/gallery"
	"sporthall/internal/domain/media"
)

// maxMultipartMemory bounds form parsing for uploads; larger parts spill to temp files.
const maxMultipartMemory = 32 << 20

// handleAddPhoto handles POST /admin/gallery.
func handleAddPhoto(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.AddPhotoInput
	if wantsJSON(r) {
		var body struct {
			URL         string `json:"url"`
			Title       string `json:"title"`
			Description string `json:"description"`
		}
		if err := strictDecode(r, &body); err != nil {
			fail(w, r, tabGallery, gallery.ErrEmptyURL)
			return
		}
		input = orchestrators.AddPhotoInput{URL: body.URL, Title: body.Title, Description: body.Description}
	} else {
		if err := r.ParseForm(); err != nil {
			fail(w, r, tabGallery, err)
			return
		}
		input = orchestrators.AddPhotoInput{
			URL:         r.PostForm.Get("url"),
			Title:       r.PostForm.Get("title"),
			Description: r.PostForm.Get("description"),
		}
	}

	photo, err := orchestrators.ExecuteAddPhoto(r.Context(), input, galleryDeps())
	if err != nil {
		fail(w, r, tabGallery, err)
		return
	}
	done(w, r, tabGallery, okPhotoAdded, photo)
}

// formPatch builds a partial update from the fields actually present in the form.
func formPatch(form url.Values) gallery.Patch {
	var p gallery.Patch
	if v, ok := form["url"]; ok && len(v) > 0 {
		p.URL = &v[0]
	}
	if v, ok := form["title"]; ok && len(v) > 0 {
		p.Title = &v[0]
	}
	if v, ok := form["description"]; ok && len(v) > 0 {
		p.Description = &v[0]
	}
	return p
}

// handleUpdatePhoto handles POST /admin/gallery/{id}/update.
func handleUpdatePhoto(w http.ResponseWriter, r *http.Request) {
	var patch gallery.Patch
	if wantsJSON(r) {
		var body struct {
			URL         *string `json:"url"`
			Title       *string `json:"title"`
			Description *string `json:"description"`
		}
		if err := strictDecode(r, &body); err != nil {
			fail(w, r, tabGallery, gallery.ErrEmptyURL)
			return
		}
		patch = gallery.Patch{URL: body.URL, Title: body.Title, Description: body.Description}
	} else {
		if err := r.ParseForm(); err != nil {
			fail(w, r, tabGallery, err)
			return
		}
		patch = formPatch(r.PostForm)
	}

	photo, err := orchestrators.ExecuteUpdatePhoto(r.Context(), orchestrators.UpdatePhotoInput{ID: r.PathValue("id"), Patch: patch}, galleryDeps())
	if err != nil {
		fail(w, r, tabGallery, err)
		return
	}
	done(w, r, tabGallery, okPhotoUpdated, photo)
}

// handleDeletePhoto handles POST /admin/gallery/{id}/delete.
func handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	if err := orchestrators.ExecuteDeletePhoto(r.Context(), r.PathValue("id"), galleryDeps()); err != nil {
		fail(w, r, tabGallery, err)
		return
	}
	done(w, r, tabGallery, okPhotoDeleted, nil)
}

// readUpload reads one multipart file, at most limit+1 bytes so oversize is still detectable.
func readUpload(r *http.Request, field string, limit int64) (data []byte, mimeType, filename string, err error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, "", "", err
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", "", media.ErrEmptyFile
	}
	defer file.Close()
	data, err = io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, "", "", err
	}
	return data, header.Header.Get("Content-Type"), header.Filename, nil
}

// handleUploadImage handles POST /admin/gallery/upload. The hosted URL goes back into the add form.
func handleUploadImage(w http.ResponseWriter, r *http.Request) {
	data, mimeType, filename, err := readUpload(r, "image", media.MaxImageBytes)
	if err != nil {
		fail(w, r, tabGallery, err)
		return
	}

	result, err := orchestrators.ExecuteUploadImage(r.Context(), orchestrators.UploadImageInput{
		Data: data, MimeType: mimeType, Filename: filename,
	}, orchestrators.UploadImageDeps{Uploader: stores.Uploads})
	if err != nil {
		fail(w, r, tabGallery, err)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]any{
			"url": result.URL, "filename": result.Filename, "width": result.Width, "height": result.Height,
		})
		return
	}
	http.Redirect(w, r, adminURL(tabGallery, "ok", okImageUploaded, url.Values{"img": {result.URL}}), http.StatusSeeOther)
}
