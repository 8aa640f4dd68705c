package web

import (
	"io/fs"
	"net/http"

	"sporthall/internal/adapters/http/middleware"
	"sporthall/internal/application/orchestrators"
)

func registerRoutes(mux *http.ServeMux) {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	// Public site
	mux.HandleFunc("GET /{$}", handleHome)
	mux.HandleFunc("POST /feedback", handleSubmitFeedback)
	mux.HandleFunc("GET /docs/{type}", handleDocument)
	mux.HandleFunc("GET /api/gallery", handleGalleryAPI)
	mux.HandleFunc("GET /events/gallery", handleGalleryEvents)
	mux.HandleFunc("GET /healthz", handleHealthz)

	// Admin authentication
	mux.HandleFunc("GET /admin/login", handleLoginPage)
	mux.HandleFunc("POST /admin/login", handleLogin)
	mux.HandleFunc("POST /admin/logout", handleLogout)
	mux.HandleFunc("GET /admin/recover", handleRecoverPage)
	mux.HandleFunc("POST /admin/recover", handleRecover)

	admin := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.RequireAdmin(h))
	}
	admin("GET /admin", handleAdmin)

	// Contacts and sports draft
	admin("POST /admin/content/reload", handleReloadDraft)
	admin("POST /admin/contacts", handleContactEdit)
	admin("POST /admin/contacts/save", handleSaveContacts)
	admin("POST /admin/sports/{i}/field", handleSportField)
	admin("POST /admin/sports/{i}/rules/add", handleListEdit(orchestrators.EditRuleAdd, false))
	admin("POST /admin/sports/{i}/rules/{j}/update", handleListEdit(orchestrators.EditRuleUpdate, true))
	admin("POST /admin/sports/{i}/rules/{j}/remove", handleListEdit(orchestrators.EditRuleRemove, true))
	admin("POST /admin/sports/{i}/safety/add", handleListEdit(orchestrators.EditSafetyAdd, false))
	admin("POST /admin/sports/{i}/safety/{j}/update", handleListEdit(orchestrators.EditSafetyUpdate, true))
	admin("POST /admin/sports/{i}/safety/{j}/remove", handleListEdit(orchestrators.EditSafetyRemove, true))
	admin("POST /admin/sports/save", handleSaveSports)

	// Gallery
	admin("POST /admin/gallery", handleAddPhoto)
	admin("POST /admin/gallery/upload", handleUploadImage)
	admin("POST /admin/gallery/{id}/update", handleUpdatePhoto)
	admin("POST /admin/gallery/{id}/delete", handleDeletePhoto)

	// Documents
	admin("POST /admin/documents/{type}", handleUploadDocument)
	admin("GET /admin/api/documents/status", handleDocumentStatus)

	// Feedback
	admin("POST /admin/feedback/{id}/{op}", handleModerateFeedback)
	admin("GET /admin/api/unread", handleUnread)

	// Account and partners
	admin("POST /admin/password", handleChangePassword)
	admin("POST /admin/secret", handleUpdateSecret)
	admin("POST /admin/partners", handleSavePartners)

	admin("GET /admin/api/perf", handlePerf)
}
