package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"sporthall/internal/domain/partner"
)

// PartnerWriter replaces the stored partner list.
type PartnerWriter interface {
	ReplaceAll(ctx context.Context, partners []partner.Partner) error
}

// SavePartnersDeps holds dependencies for SavePartners.
type SavePartnersDeps struct {
	Partners PartnerWriter
}

// ExecuteSavePartners validates and stores the whole footer partner list.
// PRE: none
// POST: the stored list equals the trimmed input, in order
func ExecuteSavePartners(ctx context.Context, list []partner.Partner, deps SavePartnersDeps) error {
	clean := make([]partner.Partner, len(list))
	for i, p := range list {
		clean[i] = partner.Partner{Name: strings.TrimSpace(p.Name), URL: strings.TrimSpace(p.URL)}
	}
	if err := partner.ValidateAll(clean); err != nil {
		return err
	}
	if err := deps.Partners.ReplaceAll(ctx, clean); err != nil {
		return fmt.Errorf("store partners: %w", err)
	}
	slog.Info("partners_saved", "count", len(clean))
	return nil
}
