package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/tutorhive/tutorhive-api/internal/auth"
	"github.com/tutorhive/tutorhive-api/internal/entity"
)

type AuthUseCase struct {
	Repo   entity.AdminRepositoryInterface
	Tokens *auth.TokenManager

	// Bootstrap credentials used only when zero accounts exist.
	BootstrapEmail    string
	BootstrapPassword string
}

func NewAuthUseCase(repo entity.AdminRepositoryInterface, tokens *auth.TokenManager, bootstrapEmail, bootstrapPassword string) *AuthUseCase {
	return &AuthUseCase{
		Repo:              repo,
		Tokens:            tokens,
		BootstrapEmail:    bootstrapEmail,
		BootstrapPassword: bootstrapPassword,
	}
}

var errInvalidCredentials = &DomainError{
	Code:    "INVALID_CREDENTIALS",
	Message: "invalid email or password",
}

// Login issues a 24h session token. Credential failures are deliberately
// indistinguishable (wrong email vs wrong password) to avoid account
// enumeration.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (string, error) {
	if err := uc.bootstrapIfEmpty(ctx); err != nil {
		return "", err
	}

	admin, err := uc.Repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, entity.ErrAdminNotFound) {
			return "", errInvalidCredentials
		}
		return "", &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to look up account"}
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return "", errInvalidCredentials
	}

	token, err := uc.Tokens.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		return "", &TechnicalError{Code: "INTERNAL_ERROR", Message: "failed to issue session token"}
	}

	return token, nil
}

// bootstrapIfEmpty auto-provisions a default admin when none exist. A known
// deployment hazard carried over intentionally; rotate the bootstrap
// credentials right after first login.
func (uc *AuthUseCase) bootstrapIfEmpty(ctx context.Context) error {
	count, err := uc.Repo.Count(ctx)
	if err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to count accounts"}
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uc.BootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		return &TechnicalError{Code: "INTERNAL_ERROR", Message: "failed to hash bootstrap password"}
	}

	admin := entity.NewAdmin("Admin", uc.BootstrapEmail, string(hash))
	if err := uc.Repo.Create(ctx, admin); err != nil {
		// A concurrent login may have won the race; unique email makes that fine.
		if !errors.Is(err, entity.ErrEmailAlreadyExists) {
			return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to create bootstrap account"}
		}
	}

	log.Printf("⚠️ no admin accounts existed, bootstrapped default admin %s, change this password now", uc.BootstrapEmail)
	return nil
}

// ChangePassword re-verifies the current password before accepting the new
// one. The stored hash is always recomputed, never copied.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed: new_password (must have at least 8 characters)",
		}
	}

	admin, err := uc.Repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, entity.ErrAdminNotFound) {
			return errInvalidCredentials
		}
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to look up account"}
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(currentPassword)) != nil {
		return errInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return &TechnicalError{Code: "INTERNAL_ERROR", Message: "failed to hash password"}
	}

	admin.PasswordHash = string(hash)
	if err := uc.Repo.Update(ctx, admin); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update account"}
	}

	return nil
}
