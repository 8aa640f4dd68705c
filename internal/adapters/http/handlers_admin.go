package web

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"sporthall/internal/adapters/http/middleware"
	"sporthall/internal/application/listutil"
	"sporthall/internal/application/orchestrators"
	"sporthall/internal/application/projections"
	"sporthall/internal/domain/content"
	"sporthall/internal/domain/document"
	"sporthall/internal/domain/feedback"
	"sporthall/internal/domain/gallery"
	"sporthall/internal/domain/partner"
)

// Admin panel tabs.
const (
	tabContacts  = "contacts"
	tabSports    = "sports"
	tabGallery   = "gallery"
	tabDocuments = "documents"
	tabFeedback  = "feedback"
	tabPassword  = "password"
	tabPartners  = "partners"
)

var adminTabs = []struct{ ID, Title string }{
	{tabContacts, "Контакты"},
	{tabSports, "Виды спорта"},
	{tabGallery, "Галерея"},
	{tabDocuments, "Документы"},
	{tabFeedback, "Обратная связь"},
	{tabPassword, "Пароль"},
	{tabPartners, "Партнёры"},
}

func validTab(tab string) bool {
	for _, t := range adminTabs {
		if t.ID == tab {
			return true
		}
	}
	return false
}

// inboxView flattens the feedback.Inbox sum type for the template.
type inboxView struct {
	State    string             `json:"state"` // loading, loaded or failed
	Messages []feedback.Message `json:"messages"`
	Total    int                `json:"total_count"`
	Unread   int                `json:"unread_count"`
	Archived int                `json:"archived_count"`
}

func newInboxView(in feedback.Inbox) inboxView {
	switch v := in.(type) {
	case feedback.InboxLoaded:
		total, unread, archived := v.Counts()
		return inboxView{State: "loaded", Messages: v.Combined(), Total: total, Unread: unread, Archived: archived}
	case feedback.InboxFailed:
		return inboxView{State: "failed"}
	}
	return inboxView{State: "loading"}
}

type documentRow struct {
	Type   document.DocType
	Title  string
	URL    string
	Status document.Status
}

// adminPage is the view model of the admin panel.
type adminPage struct {
	Tabs   []struct{ ID, Title string }
	Tab    string
	Notice string
	Error  string

	Unread      int
	UnreadKnown bool

	Draft      content.Content
	DraftError string

	Photos      []gallery.Photo
	PhotosError string
	UploadedURL string

	Documents []documentRow
	Inbox     inboxView
	InboxPage listutil.PageInfo

	SecretQuestion string
	Partners       []partner.Partner
}

// sessionToken returns the admin session token from the request context.
func sessionToken(r *http.Request) string {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	return sess.Token
}

func contentDeps() orchestrators.ContentDeps {
	return orchestrators.ContentDeps{
		Drafts: stores.Drafts,
		Store:  stores.Content,
		Cache:  services.Cache,
	}
}

func galleryDeps() orchestrators.GalleryDeps {
	return orchestrators.GalleryDeps{
		Store:  stores.Content,
		Events: services.Hub,
		Cache:  services.Cache,
	}
}

func loadInbox(ctx context.Context) feedback.Inbox {
	return projections.GetFeedbackInbox(ctx, projections.GetFeedbackInboxDeps{Feedback: stores.Feedback})
}

// handleAdmin renders GET /admin?tab=...
// Only the selected tab's data is loaded.
func handleAdmin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tab := q.Get("tab")
	if !validTab(tab) {
		tab = tabContacts
	}
	page := adminPage{
		Tabs:   adminTabs,
		Tab:    tab,
		Notice: noticeText(q.Get("ok")),
		Error:  errorText(q.Get("err")),
	}
	token := sessionToken(r)
	if services.Pollers != nil {
		page.Unread, page.UnreadKnown = services.Pollers.Unread(token)
	}

	switch tab {
	case tabContacts, tabSports:
		draft, err := orchestrators.ExecuteGetDraft(r.Context(), token, contentDeps())
		if err != nil {
			_, code := classifyError(err)
			page.DraftError = errorText(code)
		}
		page.Draft = draft
	case tabGallery:
		photos, err := stores.Content.ListPhotos(r.Context())
		if err != nil {
			_, code := classifyError(err)
			page.PhotosError = errorText(code)
		}
		page.Photos = photos
		page.UploadedURL = q.Get("img")
	case tabDocuments:
		status := services.DocStatus.Snapshot()
		for _, link := range projections.DocumentLinks(stores.Uploads) {
			page.Documents = append(page.Documents, documentRow{
				Type: link.Type, Title: link.Title, URL: link.URL, Status: status[link.Type],
			})
		}
	case tabFeedback:
		page.Inbox = newInboxView(loadInbox(r.Context()))
		page.InboxPage = listutil.NewPageInfo(listutil.ParsePageParams(q), len(page.Inbox.Messages))
		page.Inbox.Messages = listutil.Slice(page.Inbox.Messages, page.InboxPage)
	case tabPassword:
		question, err := projections.GetSecretQuestion(r.Context(), stores.Settings)
		if err != nil {
			internalError(w, err)
			return
		}
		page.SecretQuestion = question
	case tabPartners:
		list, err := stores.Partners.List(r.Context())
		if err != nil {
			internalError(w, err)
			return
		}
		page.Partners = list
	}

	renderTemplate(w, r, "admin.html", page)
}

// done answers a successful admin action: JSON for fetch callers, otherwise a redirect back to the tab.
func done(w http.ResponseWriter, r *http.Request, tab, okCode string, payload any) {
	if wantsJSON(r) {
		if payload == nil {
			payload = map[string]string{"ok": okCode}
		}
		writeJSON(w, http.StatusOK, payload)
		return
	}
	http.Redirect(w, r, adminURL(tab, "ok", okCode, nil), http.StatusSeeOther)
}

// fail answers a failed admin action. Unclassified errors are logged and hidden.
func fail(w http.ResponseWriter, r *http.Request, tab string, err error) {
	status, code := classifyError(err)
	if status == http.StatusInternalServerError {
		internalError(w, err)
		return
	}
	if wantsJSON(r) {
		writeErrorJSON(w, err)
		return
	}
	http.Redirect(w, r, adminURL(tab, "err", code, nil), http.StatusSeeOther)
}

func adminURL(tab, key, code string, extra url.Values) string {
	v := url.Values{"tab": {tab}}
	if code != "" {
		v.Set(key, code)
	}
	for k, vals := range extra {
		v[k] = vals
	}
	return "/admin?" + v.Encode()
}

// pathIndex reads a non-negative integer path segment.
func pathIndex(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
