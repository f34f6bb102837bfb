package usecase

import (
	"fmt"
	"math"
	"net/mail"
	"strings"

	domainErrors "github.com/polkiloo/gigmarket/internal/domain/errors"
	"github.com/polkiloo/gigmarket/internal/domain/model"
)

const (
	maxTitleLength    = 200
	maxTextLength     = 10000
	maxEmailLength    = 254
	maxNameLength     = 120
	maxMonetaryAmount = 1_000_000_000
)

func requireText(field, value string, limit int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", domainErrors.ErrValidation, field)
	}
	if len(value) > limit {
		return "", fmt.Errorf("%w: %s is too long", domainErrors.ErrValidation, field)
	}
	return value, nil
}

func requireAmount(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return fmt.Errorf("%w: %s must be positive", domainErrors.ErrValidation, field)
	}
	if value > maxMonetaryAmount {
		return fmt.Errorf("%w: %s is too large", domainErrors.ErrValidation, field)
	}
	return nil
}

func requireID(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", domainErrors.ErrValidation, field)
	}
	return value, nil
}

// normalizeEmail lowercases and checks a bare e-mail address.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(email) > maxEmailLength {
		return "", fmt.Errorf("%w: email is required", domainErrors.ErrValidation)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: email is malformed", domainErrors.ErrValidation)
	}
	return email, nil
}

func requireIdentity(actor model.Identity) error {
	if actor.IsZero() {
		return domainErrors.ErrUnauthenticated
	}
	return nil
}
