package web

import (
	"log/slog"
	"net/http"

	"sporthall/internal/adapters/http/middleware"
	"sporthall/internal/application/orchestrators"
	"sporthall/internal/application/projections"
	"sporthall/internal/domain/adminauth"
)

type loginPage struct {
	Username string
	Notice   string
	Error    string
}

type recoverPage struct {
	Question string
	Error    string
}

// handleLoginPage renders GET /admin/login.
func handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.IsAdmin(r.Context()) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "login.html", loginPage{
		Username: adminauth.Username,
		Notice:   noticeText(r.URL.Query().Get("ok")),
	})
}

// handleLogin handles POST /admin/login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.LoginInput{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
	deps := orchestrators.LoginDeps{
		Credentials: stores.Settings,
		Sessions:    stores.Sessions,
		Pollers:     pollerControl(),
		Now:         timeNow,
	}

	session, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
	if err != nil {
		status, code := classifyError(err)
		if status == http.StatusInternalServerError {
			internalError(w, err)
			return
		}
		renderTemplateStatus(w, r, status, "login.html", loginPage{
			Username: input.Username,
			Error:    errorText(code),
		})
		return
	}

	middleware.SetSessionCookie(w, session.Token, session.ExpiresAt)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleLogout handles POST /admin/logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		deps := orchestrators.LogoutDeps{
			Sessions: stores.Sessions,
			Drafts:   stores.Drafts,
			Pollers:  pollerControl(),
		}
		if err := orchestrators.ExecuteLogout(r.Context(), cookie.Value, deps); err != nil {
			slog.Error("logout_failed", "error", err)
		}
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// handleRecoverPage renders GET /admin/recover with the stored secret question.
func handleRecoverPage(w http.ResponseWriter, r *http.Request) {
	question, err := projections.GetSecretQuestion(r.Context(), stores.Settings)
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "recover.html", recoverPage{Question: question})
}

// handleRecover handles POST /admin/recover. Success sends the admin back to the login form.
func handleRecover(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	input := orchestrators.RecoverPasswordInput{
		Answer:      r.FormValue("answer"),
		NewPassword: r.FormValue("new_password"),
		Confirm:     r.FormValue("confirm_password"),
	}
	err := orchestrators.ExecuteRecoverPassword(r.Context(), input, orchestrators.ChangePasswordDeps{Credentials: stores.Settings})
	if err == nil {
		http.Redirect(w, r, "/admin/login?ok="+okPasswordChanged, http.StatusSeeOther)
		return
	}

	status, code := classifyError(err)
	if status == http.StatusInternalServerError {
		internalError(w, err)
		return
	}
	question, qerr := projections.GetSecretQuestion(r.Context(), stores.Settings)
	if qerr != nil {
		internalError(w, qerr)
		return
	}
	renderTemplateStatus(w, r, status, "recover.html", recoverPage{Question: question, Error: errorText(code)})
}
