package projections

import (
	"context"

	"sporthall/internal/domain/adminauth"
)

// CredentialReader reads the stored admin credentials.
type CredentialReader interface {
	GetCredentials(ctx context.Context) (adminauth.Credentials, error)
}

// GetSecretQuestion returns the recovery question shown on the anonymous recovery form.
// The answer never leaves this function.
func GetSecretQuestion(ctx context.Context, creds CredentialReader) (string, error) {
	c, err := creds.GetCredentials(ctx)
	if err != nil {
		return "", err
	}
	return c.SecretQuestion, nil
}
