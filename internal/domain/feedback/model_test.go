package feedback

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSubmission_Validate(t *testing.T) {
	tests := []struct {
		name string
		sub  Submission
		want error
	}{
		{"ok", Submission{Name: "A", Email: "a@b.com", Message: "hi"}, nil},
		{"no name", Submission{Email: "a@b.com", Message: "hi"}, ErrEmptyName},
		{"no email", Submission{Name: "A", Message: "hi"}, ErrEmptyEmail},
		{"bad email", Submission{Name: "A", Email: "ab.com", Message: "hi"}, ErrInvalidEmail},
		{"no message", Submission{Name: "A", Email: "a@b.com"}, ErrEmptyMessage},
		{"too long", Submission{Name: "A", Email: "a@b.com", Message: strings.Repeat("x", MaxMessageLength+1)}, ErrTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.sub.Normalize().Validate(); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseOperation(t *testing.T) {
	for _, s := range []string{"read", "archive", "unarchive", "delete"} {
		if _, err := ParseOperation(s); err != nil {
			t.Errorf("ParseOperation(%q): %v", s, err)
		}
	}
	if _, err := ParseOperation("spam"); !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("err = %v", err)
	}
	if _, ok := OpDelete.Action(); ok {
		t.Error("delete must not map to a PUT action")
	}
	if a, _ := OpMarkRead.Action(); a != ActionMarkRead {
		t.Errorf("read -> %q", a)
	}
}

func TestInboxLoaded_Combined(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	in := InboxLoaded{
		Active: Listing{
			Feedback:   []Message{{ID: 1, CreatedAt: t0}, {ID: 3, CreatedAt: t0.Add(2 * time.Hour)}},
			TotalCount: 3, UnreadCount: 2, ArchivedCount: 1,
		},
		Archived: Listing{Feedback: []Message{{ID: 2, CreatedAt: t0.Add(time.Hour), IsArchived: true}, {ID: 1, CreatedAt: t0}}},
	}
	got := in.Combined()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].ID != 3 || got[1].ID != 2 || got[2].ID != 1 {
		t.Errorf("order = %d,%d,%d", got[0].ID, got[1].ID, got[2].ID)
	}
	total, unread, archived := in.Counts()
	if total != 3 || unread != 2 || archived != 1 {
		t.Errorf("counts = %d/%d/%d", total, unread, archived)
	}
}
