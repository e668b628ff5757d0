package database

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tutorhive/tutorhive-api/internal/entity"
)

type LeadRepository struct {
	DB *mongo.Database
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Join and contact requests live in separate collections, one per variant.
func (r *LeadRepository) collection(kind entity.LeadKind) *mongo.Collection {
	if kind == entity.KindJoin {
		return r.DB.Collection("join_requests")
	}
	return r.DB.Collection("contact_requests")
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	_, err := r.collection(lead.Kind).InsertOne(ctx, lead)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return entity.ErrDuplicateTrackingID
		}
		log.Printf("❌ lead insert failed: %v", err)
		return err
	}
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, kind entity.LeadKind, id string) (*entity.Lead, error) {
	var lead entity.Lead
	err := r.collection(kind).FindOne(ctx, bson.M{"_id": id}).Decode(&lead)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepository) FindAll(ctx context.Context, kind entity.LeadKind) ([]*entity.Lead, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.collection(kind).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	leads := []*entity.Lead{}
	if err := cur.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// UpdateStatus sets the status field and appends the history entry in one
// update, then returns the fresh document.
func (r *LeadRepository) UpdateStatus(ctx context.Context, kind entity.LeadKind, id, field, status string, entry entity.HistoryEntry) (*entity.Lead, error) {
	update := bson.M{
		"$set":  bson.M{field: status},
		"$push": bson.M{"history": entry},
	}
	return r.findOneAndUpdate(ctx, kind, id, update)
}

func (r *LeadRepository) AppendNote(ctx context.Context, kind entity.LeadKind, id string, note entity.Note) (*entity.Lead, error) {
	return r.findOneAndUpdate(ctx, kind, id, bson.M{"$push": bson.M{"notes": note}})
}

func (r *LeadRepository) AppendHistory(ctx context.Context, kind entity.LeadKind, id string, entry entity.HistoryEntry) error {
	res, err := r.collection(kind).UpdateByID(ctx, id, bson.M{"$push": bson.M{"history": entry}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, kind entity.LeadKind, id string) error {
	res, err := r.collection(kind).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) findOneAndUpdate(ctx context.Context, kind entity.LeadKind, id string, update bson.M) (*entity.Lead, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var lead entity.Lead
	err := r.collection(kind).FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&lead)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}
	return &lead, nil
}
