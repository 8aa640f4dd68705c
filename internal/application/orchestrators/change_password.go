package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sporthall/internal/domain/adminauth"
)

// CredentialStore reads and writes the admin credentials.
type CredentialStore interface {
	CredentialReader
	SetPassword(ctx context.Context, password string) error
	SetSecret(ctx context.Context, question, answer string) error
}

var (
	ErrCurrentPasswordWrong = errors.New("current password is incorrect")
	ErrWrongSecretAnswer    = errors.New("secret answer is incorrect")
)

// ChangePasswordInput carries input for the change-password orchestrator.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	Confirm         string
}

// ChangePasswordDeps holds dependencies for ChangePassword.
type ChangePasswordDeps struct {
	Credentials CredentialStore
}

// ExecuteChangePassword replaces the admin password after checking the current one.
// Form rules are checked first, so a bad form never reads the store.
// PRE: the caller holds a valid admin session
// POST: the stored password equals NewPassword, or it is unchanged and an error is returned
func ExecuteChangePassword(ctx context.Context, input ChangePasswordInput, deps ChangePasswordDeps) error {
	if err := adminauth.ValidateNewPassword(input.CurrentPassword, input.NewPassword, input.Confirm); err != nil {
		return err
	}

	creds, err := deps.Credentials.GetCredentials(ctx)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}
	if input.CurrentPassword != creds.Password {
		slog.Info("auth_event", "event", "password_change_failed", "reason", "wrong_current")
		return ErrCurrentPasswordWrong
	}

	if err := deps.Credentials.SetPassword(ctx, input.NewPassword); err != nil {
		return fmt.Errorf("store password: %w", err)
	}
	slog.Info("auth_event", "event", "password_changed")
	return nil
}

// RecoverPasswordInput carries input for password recovery.
type RecoverPasswordInput struct {
	Answer      string
	NewPassword string
	Confirm     string
}

// ExecuteRecoverPassword overwrites the password when the secret answer matches, without the old password.
// Answers compare case-insensitively after trimming. There is no attempt throttling.
// PRE: none, the caller is anonymous
// POST: the stored password equals NewPassword, or it is unchanged and an error is returned
func ExecuteRecoverPassword(ctx context.Context, input RecoverPasswordInput, deps ChangePasswordDeps) error {
	if err := adminauth.ValidateNewPassword("", input.NewPassword, input.Confirm); err != nil {
		return err
	}

	creds, err := deps.Credentials.GetCredentials(ctx)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}
	if !creds.AnswerMatches(input.Answer) {
		slog.Info("auth_event", "event", "password_recovery_failed")
		return ErrWrongSecretAnswer
	}

	if err := deps.Credentials.SetPassword(ctx, input.NewPassword); err != nil {
		return fmt.Errorf("store password: %w", err)
	}
	slog.Info("auth_event", "event", "password_recovered")
	return nil
}

// UpdateSecretInput carries a new recovery question and answer.
type UpdateSecretInput struct {
	Question string
	Answer   string
}

// ExecuteUpdateSecretQuestion stores a new recovery question. The answer is kept normalized.
// PRE: the caller holds a valid admin session
func ExecuteUpdateSecretQuestion(ctx context.Context, input UpdateSecretInput, deps ChangePasswordDeps) error {
	if err := adminauth.ValidateSecret(input.Question, input.Answer); err != nil {
		return err
	}
	if err := deps.Credentials.SetSecret(ctx, input.Question, input.Answer); err != nil {
		return fmt.Errorf("store secret: %w", err)
	}
	slog.Info("auth_event", "event", "secret_question_changed")
	return nil
}
