package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sporthall/internal/adapters/storage/draft"
	"sporthall/internal/domain/content"
)

// ContentStore is the Content Store surface used by the editor.
type ContentStore interface {
	Load(ctx context.Context) (content.Content, error)
	SaveContacts(ctx context.Context, contacts content.Contact) error
	SaveSports(ctx context.Context, sports []content.Sport) error
}

// ContentCache holds the last content the Content Store confirmed.
type ContentCache interface {
	Content() (content.Content, bool)
	StoreContent(c content.Content)
	SetContacts(c content.Contact)
	SetSports(s []content.Sport)
}

// DraftStore holds per-session drafts.
type DraftStore interface {
	With(token string, seed draft.Seed, fn func(d *content.Draft) error) error
	Reset(token string, c content.Content)
	Delete(token string)
}

// ContentDeps holds dependencies for the content editor orchestrators.
type ContentDeps struct {
	Drafts DraftStore
	Store  ContentStore
	Cache  ContentCache
}

// EditKind names a single draft mutation.
type EditKind string

const (
	EditContactField EditKind = "contact_field"
	EditSportField   EditKind = "sport_field"
	EditRuleUpdate   EditKind = "rule_update"
	EditRuleAdd      EditKind = "rule_add"
	EditRuleRemove   EditKind = "rule_remove"
	EditSafetyUpdate EditKind = "safety_update"
	EditSafetyAdd    EditKind = "safety_add"
	EditSafetyRemove EditKind = "safety_remove"
)

// ErrUnknownEdit rejects an unrecognised EditKind.
var ErrUnknownEdit = errors.New("unknown draft edit")

// DraftEdit is one field-level change to the content draft.
// Index selects the sport and SubIndex the rule or safety line where relevant.
type DraftEdit struct {
	Kind     EditKind
	Index    int
	SubIndex int
	Field    string
	Value    string
}

// Apply performs the edit on d. Out-of-range indexes fail without mutating.
func (e DraftEdit) Apply(d *content.Draft) error {
	switch e.Kind {
	case EditContactField:
		return d.UpdateContactField(e.Field, e.Value)
	case EditSportField:
		return d.UpdateSportField(e.Index, e.Field, e.Value)
	case EditRuleUpdate:
		return d.UpdateRule(e.Index, e.SubIndex, e.Value)
	case EditRuleAdd:
		return d.AddRule(e.Index)
	case EditRuleRemove:
		return d.RemoveRule(e.Index, e.SubIndex)
	case EditSafetyUpdate:
		return d.UpdateSafety(e.Index, e.SubIndex, e.Value)
	case EditSafetyAdd:
		return d.AddSafety(e.Index)
	case EditSafetyRemove:
		return d.RemoveSafety(e.Index, e.SubIndex)
	}
	return ErrUnknownEdit
}

// seedFor starts a draft from the cached content, or loads it when nothing is cached.
func seedFor(ctx context.Context, deps ContentDeps) draft.Seed {
	return func() (content.Content, error) {
		if c, ok := deps.Cache.Content(); ok {
			return c, nil
		}
		c, err := deps.Store.Load(ctx)
		if err != nil {
			return content.Content{}, fmt.Errorf("load content: %w", err)
		}
		deps.Cache.StoreContent(c)
		return c, nil
	}
}

// ExecuteGetDraft returns the session's draft, creating it on first use.
// PRE: token belongs to a valid admin session
func ExecuteGetDraft(ctx context.Context, token string, deps ContentDeps) (content.Content, error) {
	var snap content.Content
	err := deps.Drafts.With(token, seedFor(ctx, deps), func(d *content.Draft) error {
		snap = d.Snapshot()
		return nil
	})
	return snap, err
}

// ExecuteReloadDraft replaces the session's draft with a fresh Content Store load, discarding unsaved edits.
// POST: on success draft and cache both equal the loaded content; on failure neither changes
func ExecuteReloadDraft(ctx context.Context, token string, deps ContentDeps) (content.Content, error) {
	c, err := deps.Store.Load(ctx)
	if err != nil {
		return content.Content{}, fmt.Errorf("load content: %w", err)
	}
	deps.Cache.StoreContent(c)
	deps.Drafts.Reset(token, c)
	return c.Clone(), nil
}

// ExecuteEditDraft applies one local edit. Nothing reaches the network.
// POST: returns the draft after the edit; on error the draft is unchanged
func ExecuteEditDraft(ctx context.Context, token string, edit DraftEdit, deps ContentDeps) (content.Content, error) {
	var snap content.Content
	err := deps.Drafts.With(token, seedFor(ctx, deps), func(d *content.Draft) error {
		if err := edit.Apply(d); err != nil {
			return err
		}
		snap = d.Snapshot()
		return nil
	})
	if err != nil {
		return content.Content{}, err
	}
	return snap, nil
}

// ExecuteSaveContacts PUTs the drafted contacts.
// PRE: token belongs to a valid admin session
// POST: the cache reflects the new contacts only after a 2xx response
// INVARIANT: the draft itself is never rolled back, so a failed save can be retried as-is
func ExecuteSaveContacts(ctx context.Context, token string, deps ContentDeps) error {
	var contacts content.Contact
	if err := deps.Drafts.With(token, seedFor(ctx, deps), func(d *content.Draft) error {
		contacts = d.Contacts()
		return nil
	}); err != nil {
		return err
	}

	if err := deps.Store.SaveContacts(ctx, contacts); err != nil {
		slog.Error("contacts_save_failed", "error", err)
		return fmt.Errorf("save contacts: %w", err)
	}
	deps.Cache.SetContacts(contacts)
	slog.Info("contacts_saved")
	return nil
}

// ExecuteSaveSports PUTs the drafted sports catalog after checking id uniqueness locally.
// POST: the cache reflects the new catalog only after a 2xx response
func ExecuteSaveSports(ctx context.Context, token string, deps ContentDeps) error {
	var sports []content.Sport
	if err := deps.Drafts.With(token, seedFor(ctx, deps), func(d *content.Draft) error {
		sports = d.Sports()
		return nil
	}); err != nil {
		return err
	}
	if err := content.ValidateSports(sports); err != nil {
		return err
	}

	if err := deps.Store.SaveSports(ctx, sports); err != nil {
		slog.Error("sports_save_failed", "error", err)
		return fmt.Errorf("save sports: %w", err)
	}
	deps.Cache.SetSports(sports)
	slog.Info("sports_saved", "count", len(sports))
	return nil
}
