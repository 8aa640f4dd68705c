package web

import (
	"net/http"

	"sporthall/internal/application/orchestrators"
	"sporthall/internal/domain/content"
)

var contactFields = []string{content.FieldAddress, content.FieldPhone, content.FieldEmail, content.FieldHours}

var sportFields = []string{content.FieldName, content.FieldImage, content.FieldVideo}

// fieldValue is one (field, value) pair from a form or JSON body.
type fieldValue struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// fieldEdits reads either a single {field, value} pair or every known field present in the form.
func fieldEdits(r *http.Request, known []string) ([]fieldValue, error) {
	if wantsJSON(r) {
		var fv fieldValue
		if err := strictDecode(r, &fv); err != nil {
			return nil, content.ErrUnknownField
		}
		return []fieldValue{fv}, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	if f := r.PostForm.Get("field"); f != "" {
		return []fieldValue{{Field: f, Value: r.PostForm.Get("value")}}, nil
	}
	var out []fieldValue
	for _, f := range known {
		if vals, ok := r.PostForm[f]; ok && len(vals) > 0 {
			out = append(out, fieldValue{Field: f, Value: vals[0]})
		}
	}
	return out, nil
}

// applyEdits runs each edit against the session draft and returns the resulting draft.
func applyEdits(r *http.Request, edits []orchestrators.DraftEdit) (content.Content, error) {
	token := sessionToken(r)
	deps := contentDeps()
	if len(edits) == 0 {
		return orchestrators.ExecuteGetDraft(r.Context(), token, deps)
	}
	var draft content.Content
	for _, e := range edits {
		var err error
		if draft, err = orchestrators.ExecuteEditDraft(r.Context(), token, e, deps); err != nil {
			return content.Content{}, err
		}
	}
	return draft, nil
}

func contactEdits(r *http.Request) ([]orchestrators.DraftEdit, error) {
	fields, err := fieldEdits(r, contactFields)
	if err != nil {
		return nil, err
	}
	edits := make([]orchestrators.DraftEdit, 0, len(fields))
	for _, fv := range fields {
		edits = append(edits, orchestrators.DraftEdit{Kind: orchestrators.EditContactField, Field: fv.Field, Value: fv.Value})
	}
	return edits, nil
}

// handleContactEdit handles POST /admin/contacts. The draft changes; nothing is sent to the Content Store.
func handleContactEdit(w http.ResponseWriter, r *http.Request) {
	edits, err := contactEdits(r)
	if err != nil {
		fail(w, r, tabContacts, err)
		return
	}
	draft, err := applyEdits(r, edits)
	if err != nil {
		fail(w, r, tabContacts, err)
		return
	}
	done(w, r, tabContacts, okEdited, map[string]any{"contacts": draft.Contacts})
}

// handleSaveContacts handles POST /admin/contacts/save. Fields in the same form are applied first.
func handleSaveContacts(w http.ResponseWriter, r *http.Request) {
	edits, err := contactEdits(r)
	if err != nil {
		fail(w, r, tabContacts, err)
		return
	}
	if _, err := applyEdits(r, edits); err != nil {
		fail(w, r, tabContacts, err)
		return
	}
	if err := orchestrators.ExecuteSaveContacts(r.Context(), sessionToken(r), contentDeps()); err != nil {
		fail(w, r, tabContacts, err)
		return
	}
	done(w, r, tabContacts, okContactsSaved, nil)
}

// handleSportField handles POST /admin/sports/{i}/field.
func handleSportField(w http.ResponseWriter, r *http.Request) {
	i, ok := pathIndex(r, "i")
	if !ok {
		fail(w, r, tabSports, content.ErrIndexOutOfRange)
		return
	}
	fields, err := fieldEdits(r, sportFields)
	if err != nil {
		fail(w, r, tabSports, err)
		return
	}
	edits := make([]orchestrators.DraftEdit, 0, len(fields))
	for _, fv := range fields {
		edits = append(edits, orchestrators.DraftEdit{Kind: orchestrators.EditSportField, Index: i, Field: fv.Field, Value: fv.Value})
	}
	draft, err := applyEdits(r, edits)
	if err != nil {
		fail(w, r, tabSports, err)
		return
	}
	done(w, r, tabSports, okEdited, map[string]any{"sports": draft.Sports})
}

// handleListEdit builds the handler for one rule or safety list mutation.
// withLine is set for update and remove, which address a line by {j}.
func handleListEdit(kind orchestrators.EditKind, withLine bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		i, ok := pathIndex(r, "i")
		if !ok {
			fail(w, r, tabSports, content.ErrIndexOutOfRange)
			return
		}
		edit := orchestrators.DraftEdit{Kind: kind, Index: i}
		if withLine {
			if edit.SubIndex, ok = pathIndex(r, "j"); !ok {
				fail(w, r, tabSports, content.ErrIndexOutOfRange)
				return
			}
		}
		if kind == orchestrators.EditRuleUpdate || kind == orchestrators.EditSafetyUpdate {
			if wantsJSON(r) {
				var body struct {
					Value string `json:"value"`
				}
				if err := strictDecode(r, &body); err != nil {
					fail(w, r, tabSports, orchestrators.ErrUnknownEdit)
					return
				}
				edit.Value = body.Value
			} else {
				if err := r.ParseForm(); err != nil {
					fail(w, r, tabSports, err)
					return
				}
				edit.Value = r.PostForm.Get("value")
			}
		}
		draft, err := applyEdits(r, []orchestrators.DraftEdit{edit})
		if err != nil {
			fail(w, r, tabSports, err)
			return
		}
		done(w, r, tabSports, okEdited, map[string]any{"sports": draft.Sports})
	}
}

// handleSaveSports handles POST /admin/sports/save.
func handleSaveSports(w http.ResponseWriter, r *http.Request) {
	if err := orchestrators.ExecuteSaveSports(r.Context(), sessionToken(r), contentDeps()); err != nil {
		fail(w, r, tabSports, err)
		return
	}
	done(w, r, tabSports, okSportsSaved, nil)
}

// handleReloadDraft handles POST /admin/content/reload: unsaved edits are dropped for fresh store data.
func handleReloadDraft(w http.ResponseWriter, r *http.Request) {
	tab := r.URL.Query().Get("tab")
	if tab != tabSports {
		tab = tabContacts
	}
	draft, err := orchestrators.ExecuteReloadDraft(r.Context(), sessionToken(r), contentDeps())
	if err != nil {
		fail(w, r, tab, err)
		return
	}
	done(w, r, tab, okReloaded, draft)
}
