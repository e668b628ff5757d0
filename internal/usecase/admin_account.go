package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tutorhive/tutorhive-api/internal/entity"
)

// AdminAccountUseCase manages back-office accounts. Email uniqueness is
// enforced by the store's unique index; the hash is recomputed only when a
// plaintext password is supplied.
type AdminAccountUseCase struct {
	Repo entity.AdminRepositoryInterface
}

func NewAdminAccountUseCase(repo entity.AdminRepositoryInterface) *AdminAccountUseCase {
	return &AdminAccountUseCase{Repo: repo}
}

type AdminAccountInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

func (uc *AdminAccountUseCase) Create(ctx context.Context, input AdminAccountInput) (*entity.Admin, error) {
	var fieldErrors []ValidationError
	if strings.TrimSpace(input.Name) == "" {
		fieldErrors = append(fieldErrors, ValidationError{"name", "is required"})
	}
	if !isValidEmail(input.Email) {
		fieldErrors = append(fieldErrors, ValidationError{"email", "is invalid"})
	}
	if len(input.Password) < 8 {
		fieldErrors = append(fieldErrors, ValidationError{"password", "must have at least 8 characters"})
	}
	if len(fieldErrors) > 0 {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: joinValidationErrors(fieldErrors)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &TechnicalError{Code: "INTERNAL_ERROR", Message: "failed to hash password"}
	}

	admin := entity.NewAdmin(input.Name, normalizeEmail(input.Email), string(hash))
	if err := uc.Repo.Create(ctx, admin); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, &DomainError{Code: "EMAIL_EXISTS", Message: "an admin with this email already exists"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to create account"}
	}

	return admin, nil
}

func (uc *AdminAccountUseCase) Update(ctx context.Context, id string, input AdminAccountInput) (*entity.Admin, error) {
	admin, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrAdminNotFound) {
			return nil, &DomainError{Code: "NOT_FOUND", Message: "admin account not found"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to look up account"}
	}

	if strings.TrimSpace(input.Name) != "" {
		admin.Name = input.Name
	}
	if strings.TrimSpace(input.Email) != "" {
		if !isValidEmail(input.Email) {
			return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "validation failed: email (is invalid)"}
		}
		admin.Email = normalizeEmail(input.Email)
	}

	// Hash only changes when a new plaintext password arrives.
	if input.Password != "" {
		if len(input.Password) < 8 {
			return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "validation failed: password (must have at least 8 characters)"}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, &TechnicalError{Code: "INTERNAL_ERROR", Message: "failed to hash password"}
		}
		admin.PasswordHash = string(hash)
	}

	admin.UpdatedAt = time.Now()
	if err := uc.Repo.Update(ctx, admin); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, &DomainError{Code: "EMAIL_EXISTS", Message: "an admin with this email already exists"}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to update account"}
	}

	return admin, nil
}

func (uc *AdminAccountUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrAdminNotFound) {
			return &DomainError{Code: "NOT_FOUND", Message: "admin account not found"}
		}
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to delete account"}
	}
	return nil
}

func (uc *AdminAccountUseCase) List(ctx context.Context) ([]*entity.Admin, error) {
	admins, err := uc.Repo.FindAll(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to list accounts"}
	}
	return admins, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
