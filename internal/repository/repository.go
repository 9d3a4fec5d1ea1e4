package repository

import (
	"context"

	"skillmatrix/training-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("already exists")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	UpdatePasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error
	UpdateProfileImageKey(ctx context.Context, id primitive.ObjectID, objectKey string) error
}

// CategoryRepository defines the interface for interacting with category
// documents. Skill mutations operate on the embedded skill array; callers
// pass already-normalized names.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) (primitive.ObjectID, error)
	InsertMany(ctx context.Context, categories []domain.Category) error
	// Replace persists the full category document (skills array included).
	Replace(ctx context.Context, category *domain.Category) error
}

// MappingRepository defines the interface for genus/experience-range pairs.
type MappingRepository interface {
	GetAll(ctx context.Context) ([]domain.GenusExperienceMapping, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.GenusExperienceMapping, error)
	GetByPair(ctx context.Context, genus, experienceRange string) (*domain.GenusExperienceMapping, error)
	Create(ctx context.Context, mapping *domain.GenusExperienceMapping) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, genus, experienceRange string) (*domain.GenusExperienceMapping, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MasterRepository defines the interface for requirement-matrix rows.
type MasterRepository interface {
	GetAll(ctx context.Context) ([]domain.MasterEntry, error)
	GetByGenus(ctx context.Context, genus string) ([]domain.MasterEntry, error)
	Create(ctx context.Context, entry *domain.MasterEntry) (primitive.ObjectID, error)
	InsertMany(ctx context.Context, entries []domain.MasterEntry) ([]domain.MasterEntry, error)
	// UpdateGenus rewrites every row carrying oldGenus; returns rows modified.
	UpdateGenus(ctx context.Context, oldGenus, newGenus string) (int64, error)
	// UpdateExperienceRange rewrites the band for rows of one genus; returns rows modified.
	UpdateExperienceRange(ctx context.Context, genus, oldRange, newRange string) (int64, error)
	// UpdateSkill rewrites the denormalized skill name; returns rows modified.
	UpdateSkill(ctx context.Context, oldSkill, newSkill string) (int64, error)
	ExistsByGenus(ctx context.Context, genus string) (bool, error)
	DeleteAll(ctx context.Context) error
}

// TraineePlanRepository defines the interface for finalized trainee plans.
// Plans are keyed by the embedded user email; one document per trainee.
type TraineePlanRepository interface {
	GetAll(ctx context.Context) ([]domain.TraineePlan, error)
	GetByEmail(ctx context.Context, email string) (*domain.TraineePlan, error)
	Create(ctx context.Context, plan *domain.TraineePlan) (primitive.ObjectID, error)
	// ReplaceItems swaps the full trainingPlanDetails array for one trainee.
	ReplaceItems(ctx context.Context, email string, items []domain.PlanItem) (*domain.TraineePlan, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
