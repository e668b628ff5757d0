package usecase

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tutorhive/tutorhive-api/internal/entity"
)

func TestRandomCodeShape(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		code, err := randomCode()
		assert.NoError(t, err)
		assert.True(t, pattern.MatchString(code), "code %q is not 6 zero-padded digits", code)
	}
}

func TestSendCodeStoresAndEmails(t *testing.T) {
	ctx := context.Background()

	repo := new(MockVerificationRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	settingsRepo := new(MockSettingsRepository)
	settingsRepo.On("GetOrCreate", ctx, mock.Anything).
		Return(&entity.Settings{FromEmail: "no-reply@tutorhive.in", AdminEmail: "leads@tutorhive.in"}, nil)

	emailService := new(MockEmailService)
	emailService.On("Send", "no-reply@tutorhive.in", "asha@example.com", mock.Anything, mock.Anything).Return(nil)

	uc := NewSendVerificationCodeUseCase(repo, settingsRepo, emailService, entity.Settings{})

	err := uc.Execute(ctx, "asha@example.com")

	assert.NoError(t, err)
	repo.AssertCalled(t, "Create", ctx, mock.Anything)

	record := repo.Calls[0].Arguments.Get(1).(*entity.VerificationCode)
	assert.Equal(t, "asha@example.com", record.Email)
	assert.Len(t, record.Code, 6)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), record.ExpiresAt, 5*time.Second)

	emailService.AssertExpectations(t)
}

func TestSendCodeRejectsBadEmail(t *testing.T) {
	repo := new(MockVerificationRepository)
	uc := NewSendVerificationCodeUseCase(repo, new(MockSettingsRepository), new(MockEmailService), entity.Settings{})

	err := uc.Execute(context.Background(), "not-an-email")

	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// A code is accepted exactly once: the first check consumes it, the second
// sees InvalidCode.
func TestCheckCodeSingleUse(t *testing.T) {
	ctx := context.Background()

	record := entity.NewVerificationCode("asha@example.com", "042137")

	repo := new(MockVerificationRepository)
	repo.On("FindByEmailAndCode", ctx, "asha@example.com", "042137").Return(record, nil).Once()
	repo.On("Delete", ctx, record.ID).Return(nil).Once()
	repo.On("FindByEmailAndCode", ctx, "asha@example.com", "042137").Return(nil, entity.ErrCodeNotFound).Once()

	uc := NewCheckVerificationCodeUseCase(repo)

	assert.NoError(t, uc.Execute(ctx, "asha@example.com", "042137"))

	err := uc.Execute(ctx, "asha@example.com", "042137")
	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, "INVALID_CODE", domainErr.Code)
}

func TestCheckCodeUnknownPair(t *testing.T) {
	ctx := context.Background()

	repo := new(MockVerificationRepository)
	repo.On("FindByEmailAndCode", ctx, "asha@example.com", "999999").Return(nil, entity.ErrCodeNotFound)

	uc := NewCheckVerificationCodeUseCase(repo)

	err := uc.Execute(ctx, "asha@example.com", "999999")
	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, "INVALID_CODE", domainErr.Code)
}

// Even if the TTL index has not evicted the record yet, a check after the
// window fails and does not consume the code.
func TestCheckCodeExpired(t *testing.T) {
	ctx := context.Background()

	record := entity.NewVerificationCode("asha@example.com", "042137")
	record.ExpiresAt = time.Now().Add(-time.Minute)

	repo := new(MockVerificationRepository)
	repo.On("FindByEmailAndCode", ctx, "asha@example.com", "042137").Return(record, nil)

	uc := NewCheckVerificationCodeUseCase(repo)

	err := uc.Execute(ctx, "asha@example.com", "042137")
	domainErr, ok := err.(*DomainError)
	assert.True(t, ok)
	assert.Equal(t, "CODE_EXPIRED", domainErr.Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// If the consume-delete fails the code must not count as used.
func TestCheckCodeFailsWhenConsumeFails(t *testing.T) {
	ctx := context.Background()

	record := entity.NewVerificationCode("asha@example.com", "042137")

	repo := new(MockVerificationRepository)
	repo.On("FindByEmailAndCode", ctx, "asha@example.com", "042137").Return(record, nil)
	repo.On("Delete", ctx, record.ID).Return(errStoreDown)

	uc := NewCheckVerificationCodeUseCase(repo)

	err := uc.Execute(ctx, "asha@example.com", "042137")
	assert.True(t, IsTechnicalError(err))
}
