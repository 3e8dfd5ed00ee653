package mongo

import (
	"context"
	"errors"
	"time"
	"wellness-admin/internal/domain"
	"wellness-admin/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const statsCollectionName = "statistics"

// mongoStatsRepository implements repository.StatsRepository
type mongoStatsRepository struct {
	collection *mongo.Collection
}

// NewMongoStatsRepository creates a new Stats repository backed by MongoDB.
func NewMongoStatsRepository(db *mongo.Database) repository.StatsRepository {
	return &mongoStatsRepository{
		collection: db.Collection(statsCollectionName),
	}
}

// CreateWithID inserts a zero-valued counters document keyed by the exercise
// id, created alongside the exercise shell.
func (r *mongoStatsRepository) CreateWithID(ctx context.Context, id primitive.ObjectID) error {
	if id == primitive.NilObjectID {
		return errors.New("stats ID is required")
	}

	now := time.Now().UTC()
	_, err := r.collection.InsertOne(ctx, domain.Stats{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return err
}

// GetByID retrieves the counters for one exercise.
func (r *mongoStatsRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Stats, error) {
	var stats domain.Stats
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&stats)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &stats, nil
}

// Update overwrites the counter values. Counters are caller-managed; there
// are no atomic increment semantics here.
func (r *mongoStatsRepository) Update(ctx context.Context, stats *domain.Stats) error {
	if stats.ID == primitive.NilObjectID {
		return errors.New("stats ID is required for update")
	}

	update := bson.M{
		"$set": bson.M{
			"views":       stats.Views,
			"starts":      stats.Starts,
			"completions": stats.Completions,
			"favorites":   stats.Favorites,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": stats.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the counters document for one exercise.
func (r *mongoStatsRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
