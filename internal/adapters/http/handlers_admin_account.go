package web

import (
	"net/http"
	"strconv"
	"time"

	"sporthall/internal/application/orchestrators"
	"sporthall/internal/domain/partner"
)

// handleChangePassword handles POST /admin/password.
func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		fail(w, r, tabPassword, err)
		return
	}
	input := orchestrators.ChangePasswordInput{
		CurrentPassword: r.PostForm.Get("current_password"),
		NewPassword:     r.PostForm.Get("new_password"),
		Confirm:         r.PostForm.Get("confirm_password"),
	}
	if err := orchestrators.ExecuteChangePassword(r.Context(), input, orchestrators.ChangePasswordDeps{Credentials: stores.Settings}); err != nil {
		fail(w, r, tabPassword, err)
		return
	}
	done(w, r, tabPassword, okPasswordChanged, nil)
}

// handleUpdateSecret handles POST /admin/secret.
func handleUpdateSecret(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		fail(w, r, tabPassword, err)
		return
	}
	input := orchestrators.UpdateSecretInput{
		Question: r.PostForm.Get("question"),
		Answer:   r.PostForm.Get("answer"),
	}
	if err := orchestrators.ExecuteUpdateSecretQuestion(r.Context(), input, orchestrators.ChangePasswordDeps{Credentials: stores.Settings}); err != nil {
		fail(w, r, tabPassword, err)
		return
	}
	done(w, r, tabPassword, okSecretSaved, nil)
}

// partnersFromForm zips the repeated name/url inputs into rows.
func partnersFromForm(names, urls []string) []partner.Partner {
	n := max(len(names), len(urls))
	out := make([]partner.Partner, n)
	for i := range n {
		if i < len(names) {
			out[i].Name = names[i]
		}
		if i < len(urls) {
			out[i].URL = urls[i]
		}
	}
	return out
}

// handleSavePartners handles POST /admin/partners.
// action=add appends a placeholder row, action=remove drops row index; both save the resulting list.
func handleSavePartners(w http.ResponseWriter, r *http.Request) {
	var list []partner.Partner
	action := ""
	if wantsJSON(r) {
		var body struct {
			Partners []partner.Partner `json:"partners"`
		}
		if err := strictDecode(r, &body); err != nil {
			fail(w, r, tabPartners, partner.ErrEmptyName)
			return
		}
		list = body.Partners
	} else {
		if err := r.ParseForm(); err != nil {
			fail(w, r, tabPartners, err)
			return
		}
		list = partnersFromForm(r.PostForm["name"], r.PostForm["url"])
		action = r.PostForm.Get("action")
	}

	switch action {
	case "add":
		list = append(list, partner.New())
	case "remove":
		i, err := strconv.Atoi(r.FormValue("index"))
		if err == nil && i >= 0 && i < len(list) {
			list = append(list[:i], list[i+1:]...)
		}
	}

	if err := orchestrators.ExecuteSavePartners(r.Context(), list, orchestrators.SavePartnersDeps{Partners: stores.Partners}); err != nil {
		fail(w, r, tabPartners, err)
		return
	}
	done(w, r, tabPartners, okPartnersSaved, map[string]any{"partners": list})
}

// handlePerf handles GET /admin/api/perf: request, query and store-call timings for the last hour.
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if perfCollector == nil {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(timeNow().Add(-time.Hour), 10))
}
