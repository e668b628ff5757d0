package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tutorhive/tutorhive-api/internal/entity"
)

type RateLimitRepository struct {
	Coll *mongo.Collection
}

func NewRateLimitRepository(db *mongo.Database) *RateLimitRepository {
	return &RateLimitRepository{Coll: db.Collection("rate_limits")}
}

func (r *RateLimitRepository) FindByID(ctx context.Context, id string) (*entity.RateLimitCounter, error) {
	var counter entity.RateLimitCounter
	err := r.Coll.FindOne(ctx, bson.M{"_id": id}).Decode(&counter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrCounterNotFound
		}
		return nil, err
	}
	return &counter, nil
}

func (r *RateLimitRepository) Upsert(ctx context.Context, counter *entity.RateLimitCounter) error {
	update := bson.M{"$set": bson.M{
		"count":   counter.Count,
		"resetAt": counter.ResetAt,
	}}
	_, err := r.Coll.UpdateByID(ctx, counter.ID, update, options.Update().SetUpsert(true))
	return err
}

// DeleteExpired drops counters whose window closed before the cutoff; the
// janitor worker calls this periodically.
func (r *RateLimitRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.Coll.DeleteMany(ctx, bson.M{"resetAt": bson.M{"$lt": olderThan}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
