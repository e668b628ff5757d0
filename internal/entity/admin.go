package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAdminNotFound      = errors.New("admin account not found")
	ErrEmailAlreadyExists = errors.New("an admin with this email already exists")
)

type Admin struct {
	ID    string `json:"id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	// PasswordHash is bcrypt output, never the plaintext, and never serialized.
	PasswordHash string    `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updatedAt"`
}

func NewAdmin(name, email, passwordHash string) *Admin {
	return &Admin{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

type AdminRepositoryInterface interface {
	Create(ctx context.Context, admin *Admin) error
	FindByID(ctx context.Context, id string) (*Admin, error)
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	FindAll(ctx context.Context) ([]*Admin, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, admin *Admin) error
	Delete(ctx context.Context, id string) error
}
