package orchestrators

import (
	"context"
	"errors"
	"testing"

	"sporthall/internal/domain/partner"
)

type mockPartnerStore struct {
	saved [][]partner.Partner
}

func (m *mockPartnerStore) ReplaceAll(_ context.Context, list []partner.Partner) error {
	m.saved = append(m.saved, list)
	return nil
}

func TestExecuteSavePartners(t *testing.T) {
	store := &mockPartnerStore{}
	deps := SavePartnersDeps{Partners: store}

	list := []partner.Partner{{Name: " Администрация ", URL: " https://admin.example.ru "}, partner.New()}
	if err := ExecuteSavePartners(context.Background(), list, deps); err != nil {
		t.Fatalf("ExecuteSavePartners: %v", err)
	}
	if len(store.saved) != 1 || store.saved[0][0].Name != "Администрация" || store.saved[0][0].URL != "https://admin.example.ru" {
		t.Errorf("saved = %+v", store.saved)
	}

	bad := []partner.Partner{{Name: "ok", URL: "https://x"}, {Name: "bad", URL: "ftp://x"}}
	err := ExecuteSavePartners(context.Background(), bad, deps)
	var ie *partner.IndexError
	if !errors.As(err, &ie) || ie.Index != 1 || !errors.Is(err, partner.ErrInvalidURL) {
		t.Errorf("err = %v", err)
	}
	if len(store.saved) != 1 {
		t.Error("invalid list was stored")
	}
}
