package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tutorhive/tutorhive-api/internal/entity"
)

type VerificationRepository struct {
	Coll *mongo.Collection
}

func NewVerificationRepository(db *mongo.Database) *VerificationRepository {
	return &VerificationRepository{Coll: db.Collection("verification_codes")}
}

func (r *VerificationRepository) Create(ctx context.Context, code *entity.VerificationCode) error {
	_, err := r.Coll.InsertOne(ctx, code)
	return err
}

// FindByEmailAndCode matches on the exact pair; a wrong code for a known email
// is indistinguishable from an unknown email.
func (r *VerificationRepository) FindByEmailAndCode(ctx context.Context, email, code string) (*entity.VerificationCode, error) {
	var record entity.VerificationCode
	err := r.Coll.FindOne(ctx, bson.M{"email": email, "code": code}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrCodeNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *VerificationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.Coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return entity.ErrCodeNotFound
	}
	return nil
}
