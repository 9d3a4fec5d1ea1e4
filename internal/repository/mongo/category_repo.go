package mongo

import (
	"context"
	"errors"
	"time"

	"skillmatrix/training-app/internal/domain"
	"skillmatrix/training-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const categoryCollectionName = "categories"

// mongoCategoryRepository implements repository.CategoryRepository using MongoDB.
type mongoCategoryRepository struct {
	collection *mongo.Collection
}

// NewMongoCategoryRepository creates a new instance of mongoCategoryRepository.
func NewMongoCategoryRepository(db *mongo.Database) repository.CategoryRepository {
	return &mongoCategoryRepository{
		collection: db.Collection(categoryCollectionName),
	}
}

// GetAll retrieves every category, soft-deleted ones included; filtering on
// the deleted flags is the caller's concern.
func (r *mongoCategoryRepository) GetAll(ctx context.Context) ([]domain.Category, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []domain.Category
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

// GetByName retrieves a category by its normalized name.
func (r *mongoCategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	var category domain.Category
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetByID retrieves a category by its ObjectID.
func (r *mongoCategoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	var category domain.Category
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Create inserts a new category document.
func (r *mongoCategoryRepository) Create(ctx context.Context, category *domain.Category) (primitive.ObjectID, error) {
	if category.Name == "" {
		return primitive.NilObjectID, errors.New("category name is required")
	}

	category.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// InsertMany bulk-inserts category documents (seed/testing path).
func (r *mongoCategoryRepository) InsertMany(ctx context.Context, categories []domain.Category) error {
	if len(categories) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(categories))
	for i := range categories {
		categories[i].ID = primitive.NewObjectID()
		categories[i].CreatedAt = now
		categories[i].UpdatedAt = now
		docs[i] = categories[i]
	}

	_, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

// Replace persists the full category document. The name, skills array and
// deleted flag are all written; last write wins.
func (r *mongoCategoryRepository) Replace(ctx context.Context, category *domain.Category) error {
	category.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": category.ID}, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrConflict
		}
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureCategoryIndexes creates necessary indexes for the categories collection.
func EnsureCategoryIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
