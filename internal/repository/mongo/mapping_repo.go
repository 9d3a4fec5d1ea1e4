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

const mappingCollectionName = "genus_experience_mappings"

// mongoMappingRepository implements repository.MappingRepository using MongoDB.
type mongoMappingRepository struct {
	collection *mongo.Collection
}

// NewMongoMappingRepository creates a new instance of mongoMappingRepository.
func NewMongoMappingRepository(db *mongo.Database) repository.MappingRepository {
	return &mongoMappingRepository{
		collection: db.Collection(mappingCollectionName),
	}
}

// GetAll retrieves every genus/experience mapping.
func (r *mongoMappingRepository) GetAll(ctx context.Context) ([]domain.GenusExperienceMapping, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var mappings []domain.GenusExperienceMapping
	if err = cursor.All(ctx, &mappings); err != nil {
		return nil, err
	}
	if mappings == nil {
		mappings = []domain.GenusExperienceMapping{}
	}
	return mappings, nil
}

// GetByID retrieves a mapping by its ObjectID.
func (r *mongoMappingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.GenusExperienceMapping, error) {
	var mapping domain.GenusExperienceMapping
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&mapping)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &mapping, nil
}

// GetByPair retrieves the mapping matching the exact (genus, experienceRange) pair.
func (r *mongoMappingRepository) GetByPair(ctx context.Context, genus, experienceRange string) (*domain.GenusExperienceMapping, error) {
	var mapping domain.GenusExperienceMapping
	filter := bson.M{"genus": genus, "experienceRange": experienceRange}

	err := r.collection.FindOne(ctx, filter).Decode(&mapping)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &mapping, nil
}

// Create inserts a new mapping.
func (r *mongoMappingRepository) Create(ctx context.Context, mapping *domain.GenusExperienceMapping) (primitive.ObjectID, error) {
	if mapping.Genus == "" || mapping.ExperienceRange == "" {
		return primitive.NilObjectID, errors.New("genus and experience range are required")
	}

	mapping.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	mapping.CreatedAt = now
	mapping.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, mapping)
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

// Update rewrites a mapping's genus and experience range and returns the
// updated document.
func (r *mongoMappingRepository) Update(ctx context.Context, id primitive.ObjectID, genus, experienceRange string) (*domain.GenusExperienceMapping, error) {
	update := bson.M{
		"$set": bson.M{
			"genus":           genus,
			"experienceRange": experienceRange,
			"updatedAt":       time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mapping domain.GenusExperienceMapping
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&mapping)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return &mapping, nil
}

// Delete removes a mapping by id.
func (r *mongoMappingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMappingIndexes creates necessary indexes for the mappings collection.
func EnsureMappingIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "genus", Value: 1},
				{Key: "experienceRange", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
