package partner

import (
	"context"

	domain "sporthall/internal/domain/partner"
)

// Store persists the ordered partner list.
type Store interface {
	List(ctx context.Context) ([]domain.Partner, error)
	ReplaceAll(ctx context.Context, partners []domain.Partner) error
}
