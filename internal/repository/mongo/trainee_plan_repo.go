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

const traineePlanCollectionName = "trainee_plans"

// mongoTraineePlanRepository implements repository.TraineePlanRepository using MongoDB.
type mongoTraineePlanRepository struct {
	collection *mongo.Collection
}

// NewMongoTraineePlanRepository creates a new instance of mongoTraineePlanRepository.
func NewMongoTraineePlanRepository(db *mongo.Database) repository.TraineePlanRepository {
	return &mongoTraineePlanRepository{
		collection: db.Collection(traineePlanCollectionName),
	}
}

// GetAll retrieves every trainee plan.
func (r *mongoTraineePlanRepository) GetAll(ctx context.Context) ([]domain.TraineePlan, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []domain.TraineePlan
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []domain.TraineePlan{}
	}
	return plans, nil
}

// GetByEmail retrieves the plan whose embedded user email matches.
func (r *mongoTraineePlanRepository) GetByEmail(ctx context.Context, email string) (*domain.TraineePlan, error) {
	var plan domain.TraineePlan
	filter := bson.M{"userDetails.email": email}

	err := r.collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// Create inserts a new trainee plan document.
func (r *mongoTraineePlanRepository) Create(ctx context.Context, plan *domain.TraineePlan) (primitive.ObjectID, error) {
	if plan.UserDetails.Email == "" {
		return primitive.NilObjectID, errors.New("trainee email is required")
	}

	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
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

// ReplaceItems swaps the full trainingPlanDetails array for one trainee and
// returns the updated document.
func (r *mongoTraineePlanRepository) ReplaceItems(ctx context.Context, email string, items []domain.PlanItem) (*domain.TraineePlan, error) {
	update := bson.M{
		"$set": bson.M{
			"trainingPlanDetails": items,
			"updatedAt":           time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var plan domain.TraineePlan
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"userDetails.email": email}, update, opts).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// Delete removes a trainee plan by id.
func (r *mongoTraineePlanRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTraineePlanIndexes creates necessary indexes for the trainee plans collection.
func EnsureTraineePlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userDetails.email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
