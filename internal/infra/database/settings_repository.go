package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tutorhive/tutorhive-api/internal/entity"
)

type SettingsRepository struct {
	Coll *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{Coll: db.Collection("settings")}
}

// GetOrCreate reads the singleton, creating it with the given defaults when
// absent. The fixed _id keeps it a singleton even under concurrent first reads.
func (r *SettingsRepository) GetOrCreate(ctx context.Context, defaults entity.Settings) (*entity.Settings, error) {
	var settings entity.Settings
	err := r.Coll.FindOne(ctx, bson.M{"_id": entity.SettingsID}).Decode(&settings)
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	defaults.ID = entity.SettingsID
	if _, err := r.Coll.InsertOne(ctx, defaults); err != nil {
		if IsDuplicateKeyError(err) {
			// Lost the creation race; read the winner.
			if rerr := r.Coll.FindOne(ctx, bson.M{"_id": entity.SettingsID}).Decode(&settings); rerr == nil {
				return &settings, nil
			}
		}
		return nil, err
	}
	return &defaults, nil
}

func (r *SettingsRepository) Update(ctx context.Context, s *entity.Settings) error {
	s.ID = entity.SettingsID
	update := bson.M{"$set": bson.M{
		"fromEmail":  s.FromEmail,
		"adminEmail": s.AdminEmail,
	}}

	_, err := r.Coll.UpdateByID(ctx, entity.SettingsID, update, options.Update().SetUpsert(true))
	return err
}
