package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"sporthall/internal/adapters/remote"
	"sporthall/internal/application/events"
	"sporthall/internal/application/orchestrators"
	"sporthall/internal/application/projections"
	"sporthall/internal/domain/captcha"
	"sporthall/internal/domain/document"
	"sporthall/internal/domain/feedback"
)

// sseKeepAlive is how often an idle event stream sends a comment line.
var sseKeepAlive = 25 * time.Second

// feedbackForm re-fills the public form after a rejected submission.
type feedbackForm struct {
	Name    string
	Email   string
	Message string
}

// sitePage is the view model of the public page.
type sitePage struct {
	Site     projections.PublicSite
	Captcha  captcha.Challenge
	Form     feedbackForm
	Notice   string
	Error    string
	LoggedIn bool
}

func publicSiteDeps() projections.GetPublicSiteDeps {
	return projections.GetPublicSiteDeps{
		Content:   stores.Content,
		Gallery:   stores.Content,
		Partners:  stores.Partners,
		Documents: stores.Uploads,
		Cache:     services.Cache,
	}
}

// handleHome renders the public site.
func handleHome(w http.ResponseWriter, r *http.Request) {
	renderSite(w, r, http.StatusOK, sitePage{Notice: noticeText(r.URL.Query().Get("ok"))})
}

func renderSite(w http.ResponseWriter, r *http.Request, status int, page sitePage) {
	site, err := projections.GetPublicSite(r.Context(), publicSiteDeps())
	if err != nil {
		// Only a cancelled request gets here.
		slog.Info("site_render_cancelled", "error", err)
		return
	}
	page.Site = site
	page.Captcha = stores.Captcha.Issue()
	renderTemplateStatus(w, r, status, "site.html", page)
}

// handleSubmitFeedback handles POST /feedback from the public form.
func handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.SubmitFeedbackInput
	if wantsJSON(r) {
		var body struct {
			Name          string `json:"name"`
			Email         string `json:"email"`
			Message       string `json:"message"`
			CaptchaID     string `json:"captcha_id"`
			CaptchaAnswer string `json:"captcha_answer"`
		}
		if err := strictDecode(r, &body); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: errInvalid, Message: errorText(errInvalid)})
			return
		}
		input = orchestrators.SubmitFeedbackInput{
			Submission:    feedback.Submission{Name: body.Name, Email: body.Email, Message: body.Message},
			CaptchaID:     body.CaptchaID,
			CaptchaAnswer: body.CaptchaAnswer,
		}
	} else {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input = orchestrators.SubmitFeedbackInput{
			Submission: feedback.Submission{
				Name:    r.FormValue("name"),
				Email:   r.FormValue("email"),
				Message: r.FormValue("message"),
			},
			CaptchaID:     r.FormValue("captcha_id"),
			CaptchaAnswer: r.FormValue("captcha_answer"),
		}
	}

	deps := orchestrators.SubmitFeedbackDeps{
		Captcha:  stores.Captcha,
		Feedback: stores.Feedback,
		Mailer:   services.Mailer,
		NotifyTo: services.NotifyTo,
	}
	err := orchestrators.ExecuteSubmitFeedback(r.Context(), input, deps)
	if err == nil {
		if wantsJSON(r) {
			next := stores.Captcha.Issue()
			writeJSON(w, http.StatusOK, map[string]any{
				"ok":      true,
				"message": noticeText(okFeedbackSent),
				"captcha": map[string]any{"id": next.ID, "question": next.Question()},
			})
			return
		}
		http.Redirect(w, r, "/?ok="+okFeedbackSent+"#feedback", http.StatusSeeOther)
		return
	}

	status, code := classifyError(err)
	msg := errorText(code)
	// The store's own wording beats the generic fallback.
	if serverMsg, ok := remote.ServerMessage(err); ok {
		msg = serverMsg
	}
	if wantsJSON(r) {
		next := stores.Captcha.Issue()
		writeJSON(w, status, map[string]any{
			"error":   code,
			"message": msg,
			"captcha": map[string]any{"id": next.ID, "question": next.Question()},
		})
		return
	}
	renderSite(w, r, status, sitePage{
		Error: msg,
		Form: feedbackForm{
			Name:    input.Submission.Name,
			Email:   input.Submission.Email,
			Message: input.Submission.Message,
		},
	})
}

// handleDocument redirects a footer link to the hosted PDF.
func handleDocument(w http.ResponseWriter, r *http.Request) {
	docType, err := document.ParseDocType(r.PathValue("type"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, stores.Uploads.DocumentURL(docType), http.StatusFound)
}

// handleGalleryAPI returns the current photo list. Open pages re-fetch it after a refresh event.
func handleGalleryAPI(w http.ResponseWriter, r *http.Request) {
	gen := services.Cache.GalleryGeneration()
	if cached, ok := services.Cache.Gallery(); ok {
		writeJSON(w, http.StatusOK, map[string]any{"photos": cached})
		return
	}
	photos, err := stores.Content.ListPhotos(r.Context())
	if err != nil {
		slog.Error("gallery_list_failed", "error", err)
		writeErrorJSON(w, err)
		return
	}
	services.Cache.StoreGallery(gen, photos)
	writeJSON(w, http.StatusOK, map[string]any{"photos": photos})
}

// handleGalleryEvents streams gallery refresh events as server-sent events.
func handleGalleryEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch, cancel := services.Hub.Subscribe(events.TopicGallery)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(": ok\n\n"))
	flusher.Flush()

	keepAlive := time.NewTicker(sseKeepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := writeSSEData(w, ev); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeSSEData(w http.ResponseWriter, ev events.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte("event: " + ev.Topic + "\ndata: ")); err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n\n"))
	return err
}

// handleHealthz reports liveness and when site content was last confirmed by the Content Store.
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"status": "ok"}
	if at := services.Cache.LoadedAt(); !at.IsZero() {
		body["content_loaded_at"] = at.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, body)
}
