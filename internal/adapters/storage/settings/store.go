package settings

import (
	"context"

	domain "sporthall/internal/domain/adminauth"
)

// Keys under which the admin credentials are stored.
const (
	KeyAdminPassword  = "adminPassword"
	KeySecretQuestion = "secretQuestion"
	KeySecretAnswer   = "secretAnswer"
)

// Store persists the admin credentials. Values are plaintext.
type Store interface {
	GetCredentials(ctx context.Context) (domain.Credentials, error)
	SetPassword(ctx context.Context, password string) error
	SetSecret(ctx context.Context, question, answer string) error
	Seed(ctx context.Context, defaults domain.Credentials) error
}
