package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/tutorhive/tutorhive-api/internal/entity"
)

type SendVerificationCodeUseCase struct {
	Repo         entity.VerificationRepositoryInterface
	SettingsRepo entity.SettingsRepositoryInterface
	EmailService EmailService
	Defaults     entity.Settings
}

func NewSendVerificationCodeUseCase(
	repo entity.VerificationRepositoryInterface,
	settingsRepo entity.SettingsRepositoryInterface,
	emailService EmailService,
	defaults entity.Settings,
) *SendVerificationCodeUseCase {
	return &SendVerificationCodeUseCase{
		Repo:         repo,
		SettingsRepo: settingsRepo,
		EmailService: emailService,
		Defaults:     defaults,
	}
}

// Execute issues a fresh code for the address. Outstanding codes for the same
// email stay valid until they expire; re-sending does not invalidate them.
func (uc *SendVerificationCodeUseCase) Execute(ctx context.Context, email string) error {
	if !isValidEmail(email) {
		return &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed: email (is invalid)",
		}
	}

	code, err := randomCode()
	if err != nil {
		return &TechnicalError{
			Code:    "INTERNAL_ERROR",
			Message: "failed to generate verification code",
		}
	}

	record := entity.NewVerificationCode(email, code)
	if err := uc.Repo.Create(ctx, record); err != nil {
		log.Printf("❌ failed to store verification code: %v", err)
		return &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to store verification code",
		}
	}

	from := uc.fromAddress(ctx)
	subject := "Your TutorHive verification code"
	body := fmt.Sprintf(
		"<p>Your verification code is <strong>%s</strong>.</p><p>It expires in 10 minutes.</p>",
		code,
	)

	if err := uc.EmailService.Send(from, email, subject, body); err != nil {
		log.Printf("❌ failed to email verification code to %s: %v", email, err)
		return &TechnicalError{
			Code:    "EMAIL_ERROR",
			Message: "failed to send verification email",
		}
	}

	return nil
}

func (uc *SendVerificationCodeUseCase) fromAddress(ctx context.Context) string {
	settings, err := uc.SettingsRepo.GetOrCreate(ctx, uc.Defaults)
	if err != nil {
		return uc.Defaults.FromEmail
	}
	return settings.FromEmail
}

// randomCode draws a uniform 6-digit decimal code, zero-padded (000000-999999).
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

type CheckVerificationCodeUseCase struct {
	Repo entity.VerificationRepositoryInterface
}

func NewCheckVerificationCodeUseCase(repo entity.VerificationRepositoryInterface) *CheckVerificationCodeUseCase {
	return &CheckVerificationCodeUseCase{Repo: repo}
}

// Execute consumes a code: exactly one successful check per issued code. The
// TTL index should have evicted expired records already; the explicit check
// covers eviction lag.
func (uc *CheckVerificationCodeUseCase) Execute(ctx context.Context, email, code string) error {
	record, err := uc.Repo.FindByEmailAndCode(ctx, email, code)
	if err != nil {
		if errors.Is(err, entity.ErrCodeNotFound) {
			return &DomainError{
				Code:    "INVALID_CODE",
				Message: "invalid verification code",
			}
		}
		return &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to look up verification code",
		}
	}

	if record.Expired(time.Now()) {
		return &DomainError{
			Code:    "CODE_EXPIRED",
			Message: "verification code has expired",
		}
	}

	// Single use: if the delete fails the code must not count as consumed.
	if err := uc.Repo.Delete(ctx, record.ID); err != nil {
		log.Printf("❌ failed to consume verification code: %v", err)
		return &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to consume verification code",
		}
	}

	return nil
}
