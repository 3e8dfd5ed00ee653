package mongo

import (
	"context"
	"errors"
	"log"
	"time"
	"wellness-admin/internal/domain"
	"wellness-admin/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const tagCollectionName = "tags"

// mongoTagRepository implements repository.TagRepository
type mongoTagRepository struct {
	collection *mongo.Collection
}

// NewMongoTagRepository creates a new Tag repository backed by MongoDB.
func NewMongoTagRepository(db *mongo.Database) repository.TagRepository {
	return &mongoTagRepository{
		collection: db.Collection(tagCollectionName),
	}
}

// Create inserts a new tag.
func (r *mongoTagRepository) Create(ctx context.Context, tag *domain.Tag) (primitive.ObjectID, error) {
	if tag.Name == "" {
		return primitive.NilObjectID, errors.New("tag name is required")
	}

	tag.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	tag.CreatedAt = now
	tag.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, tag)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a tag by its ID.
func (r *mongoTagRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tag)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// List retrieves all tags, newest first.
func (r *mongoTagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	var tags []domain.Tag

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// UpdateName renames a tag. Exercises reference tags by name, so existing
// exercises keep the old name (no cascade, matching the original behavior).
func (r *mongoTagRepository) UpdateName(ctx context.Context, id primitive.ObjectID, name string) error {
	if name == "" {
		return errors.New("tag name cannot be empty")
	}

	update := bson.M{"$set": bson.M{"name": name, "updatedAt": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a tag.
func (r *mongoTagRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTagIndexes creates necessary indexes for the tags collection.
func EnsureTagIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
