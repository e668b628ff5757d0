package database

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tutorhive/tutorhive-api/internal/entity"
)

type AdminRepository struct {
	Coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{Coll: db.Collection("admins")}
}

func (r *AdminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	_, err := r.Coll.InsertOne(ctx, admin)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return entity.ErrEmailAlreadyExists
		}
		log.Printf("❌ admin insert failed: %v", err)
		return err
	}
	return nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*entity.Admin, error) {
	var admin entity.Admin
	err := r.Coll.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	var admin entity.Admin
	err := r.Coll.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) FindAll(ctx context.Context) ([]*entity.Admin, error) {
	cur, err := r.Coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	admins := []*entity.Admin{}
	if err := cur.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	return r.Coll.CountDocuments(ctx, bson.M{})
}

func (r *AdminRepository) Update(ctx context.Context, admin *entity.Admin) error {
	update := bson.M{"$set": bson.M{
		"name":         admin.Name,
		"email":        admin.Email,
		"passwordHash": admin.PasswordHash,
		"updatedAt":    admin.UpdatedAt,
	}}

	res, err := r.Coll.UpdateByID(ctx, admin.ID, update)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return entity.ErrEmailAlreadyExists
		}
		return err
	}
	if res.MatchedCount == 0 {
		return entity.ErrAdminNotFound
	}
	return nil
}

func (r *AdminRepository) Delete(ctx context.Context, id string) error {
	res, err := r.Coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return entity.ErrAdminNotFound
	}
	return nil
}
