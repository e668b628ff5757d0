package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrCodeNotFound = errors.New("verification code not found")

// VerificationCode is single-use: deleted on a successful check, and evicted
// by a TTL index on ExpiresAt once the 10-minute window passes.
type VerificationCode struct {
	ID        string    `json:"id" bson:"_id"`
	Email     string    `json:"email" bson:"email"`
	Code      string    `json:"code" bson:"code"`
	ExpiresAt time.Time `json:"expires_at" bson:"expiresAt"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
}

const VerificationCodeTTL = 10 * time.Minute

func NewVerificationCode(email, code string) *VerificationCode {
	now := time.Now()
	return &VerificationCode{
		ID:        uuid.New().String(),
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(VerificationCodeTTL),
		CreatedAt: now,
	}
}

func (v *VerificationCode) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

type VerificationRepositoryInterface interface {
	Create(ctx context.Context, code *VerificationCode) error
	FindByEmailAndCode(ctx context.Context, email, code string) (*VerificationCode, error)
	Delete(ctx context.Context, id string) error
}
