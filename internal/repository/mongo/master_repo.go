package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"skillmatrix/training-app/internal/domain"
	"skillmatrix/training-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const masterCollectionName = "master_entries"

// mongoMasterRepository implements repository.MasterRepository using MongoDB.
type mongoMasterRepository struct {
	collection *mongo.Collection
}

// NewMongoMasterRepository creates a new instance of mongoMasterRepository.
func NewMongoMasterRepository(db *mongo.Database) repository.MasterRepository {
	return &mongoMasterRepository{
		collection: db.Collection(masterCollectionName),
	}
}

// GetAll retrieves every master-matrix row.
func (r *mongoMasterRepository) GetAll(ctx context.Context) ([]domain.MasterEntry, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.MasterEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.MasterEntry{}
	}
	return entries, nil
}

// GetByGenus retrieves rows whose genus equals the given value,
// case-insensitively. Exact match on the collapsed string; no substring
// matching.
func (r *mongoMasterRepository) GetByGenus(ctx context.Context, genus string) ([]domain.MasterEntry, error) {
	filter := bson.M{"genus": bson.M{"$regex": "^" + regexp.QuoteMeta(genus) + "$", "$options": "i"}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.MasterEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.MasterEntry{}
	}
	return entries, nil
}

// Create inserts a new master row.
func (r *mongoMasterRepository) Create(ctx context.Context, entry *domain.MasterEntry) (primitive.ObjectID, error) {
	if entry.ExperienceRange == "" || entry.Genus == "" || entry.Skill == "" {
		return primitive.NilObjectID, errors.New("experience range, genus, and skill are required")
	}

	entry.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// InsertMany bulk-inserts master rows and returns them with ids assigned.
func (r *mongoMasterRepository) InsertMany(ctx context.Context, entries []domain.MasterEntry) ([]domain.MasterEntry, error) {
	if len(entries) == 0 {
		return []domain.MasterEntry{}, nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, len(entries))
	for i := range entries {
		entries[i].ID = primitive.NewObjectID()
		entries[i].CreatedAt = now
		entries[i].UpdatedAt = now
		docs[i] = entries[i]
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateGenus rewrites every row carrying oldGenus to newGenus.
func (r *mongoMasterRepository) UpdateGenus(ctx context.Context, oldGenus, newGenus string) (int64, error) {
	update := bson.M{"$set": bson.M{"genus": newGenus, "updatedAt": time.Now().UTC()}}

	result, err := r.collection.UpdateMany(ctx, bson.M{"genus": oldGenus}, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// UpdateExperienceRange rewrites the band for rows of one genus.
func (r *mongoMasterRepository) UpdateExperienceRange(ctx context.Context, genus, oldRange, newRange string) (int64, error) {
	filter := bson.M{"genus": genus, "experienceRange": oldRange}
	update := bson.M{"$set": bson.M{"experienceRange": newRange, "updatedAt": time.Now().UTC()}}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// UpdateSkill rewrites the denormalized skill name across every row sharing it.
func (r *mongoMasterRepository) UpdateSkill(ctx context.Context, oldSkill, newSkill string) (int64, error) {
	update := bson.M{"$set": bson.M{"skill": newSkill, "updatedAt": time.Now().UTC()}}

	result, err := r.collection.UpdateMany(ctx, bson.M{"skill": oldSkill}, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// ExistsByGenus reports whether any master row references the genus.
func (r *mongoMasterRepository) ExistsByGenus(ctx context.Context, genus string) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{"genus": genus}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteAll wipes the master matrix.
func (r *mongoMasterRepository) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}

// EnsureMasterIndexes creates necessary indexes for the master collection.
func EnsureMasterIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "genus", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "skill", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
