package captcha

import (
	domain "sporthall/internal/domain/captcha"
)

// Store holds issued challenges until they are answered or expire.
type Store interface {
	Issue() domain.Challenge
	// Take removes and returns the challenge. ok is false when unknown, already taken or expired.
	Take(id string) (domain.Challenge, bool)
}
