package service

import (
	"context"
	"strings"

	"skillmatrix/training-app/internal/domain"
	"skillmatrix/training-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They mirror the store's behavior closely
// enough for service-level tests: sentinel errors, unique keys, copies on
// read so tests can't mutate stored state by accident.

type fakeUserRepo struct {
	users []domain.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	user.ID = primitive.NewObjectID()
	r.users = append(r.users, *user)
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			uu := u
			return &uu, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			uu := u
			return &uu, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *fakeUserRepo) GetByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdatePasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error {
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].PasswordHash = hash
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeUserRepo) UpdateProfileImageKey(ctx context.Context, id primitive.ObjectID, objectKey string) error {
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].ProfileImageKey = objectKey
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeCategoryRepo struct {
	categories []domain.Category
}

func (r *fakeCategoryRepo) GetAll(ctx context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

func (r *fakeCategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			cc := c
			cc.Skills = append([]domain.Skill(nil), c.Skills...)
			return &cc, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			cc := c
			return &cc, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *domain.Category) (primitive.ObjectID, error) {
	if _, err := r.GetByName(ctx, category.Name); err == nil {
		return primitive.NilObjectID, repository.ErrConflict
	}
	category.ID = primitive.NewObjectID()
	r.categories = append(r.categories, *category)
	return category.ID, nil
}

func (r *fakeCategoryRepo) InsertMany(ctx context.Context, categories []domain.Category) error {
	for i := range categories {
		if _, err := r.Create(ctx, &categories[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeCategoryRepo) Replace(ctx context.Context, category *domain.Category) error {
	for _, c := range r.categories {
		if c.ID != category.ID && c.Name == category.Name {
			return repository.ErrConflict
		}
	}
	for i, c := range r.categories {
		if c.ID == category.ID {
			r.categories[i] = *category
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeMasterRepo struct {
	entries []domain.MasterEntry
}

func (r *fakeMasterRepo) GetAll(ctx context.Context) ([]domain.MasterEntry, error) {
	out := make([]domain.MasterEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

func (r *fakeMasterRepo) GetByGenus(ctx context.Context, genus string) ([]domain.MasterEntry, error) {
	var out []domain.MasterEntry
	for _, e := range r.entries {
		if strings.EqualFold(e.Genus, genus) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeMasterRepo) Create(ctx context.Context, entry *domain.MasterEntry) (primitive.ObjectID, error) {
	entry.ID = primitive.NewObjectID()
	r.entries = append(r.entries, *entry)
	return entry.ID, nil
}

func (r *fakeMasterRepo) InsertMany(ctx context.Context, entries []domain.MasterEntry) ([]domain.MasterEntry, error) {
	for i := range entries {
		entries[i].ID = primitive.NewObjectID()
		r.entries = append(r.entries, entries[i])
	}
	return entries, nil
}

func (r *fakeMasterRepo) UpdateGenus(ctx context.Context, oldGenus, newGenus string) (int64, error) {
	var n int64
	for i := range r.entries {
		if r.entries[i].Genus == oldGenus {
			r.entries[i].Genus = newGenus
			n++
		}
	}
	return n, nil
}

func (r *fakeMasterRepo) UpdateExperienceRange(ctx context.Context, genus, oldRange, newRange string) (int64, error) {
	var n int64
	for i := range r.entries {
		if r.entries[i].Genus == genus && r.entries[i].ExperienceRange == oldRange {
			r.entries[i].ExperienceRange = newRange
			n++
		}
	}
	return n, nil
}

func (r *fakeMasterRepo) UpdateSkill(ctx context.Context, oldSkill, newSkill string) (int64, error) {
	var n int64
	for i := range r.entries {
		if r.entries[i].Skill == oldSkill {
			r.entries[i].Skill = newSkill
			n++
		}
	}
	return n, nil
}

func (r *fakeMasterRepo) ExistsByGenus(ctx context.Context, genus string) (bool, error) {
	for _, e := range r.entries {
		if strings.EqualFold(e.Genus, genus) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMasterRepo) DeleteAll(ctx context.Context) error {
	r.entries = nil
	return nil
}

type fakeMappingRepo struct {
	mappings []domain.GenusExperienceMapping
}

func (r *fakeMappingRepo) GetAll(ctx context.Context) ([]domain.GenusExperienceMapping, error) {
	out := make([]domain.GenusExperienceMapping, len(r.mappings))
	copy(out, r.mappings)
	return out, nil
}

func (r *fakeMappingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.GenusExperienceMapping, error) {
	for _, m := range r.mappings {
		if m.ID == id {
			mm := m
			return &mm, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeMappingRepo) GetByPair(ctx context.Context, genus, experienceRange string) (*domain.GenusExperienceMapping, error) {
	for _, m := range r.mappings {
		if m.Genus == genus && m.ExperienceRange == experienceRange {
			mm := m
			return &mm, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeMappingRepo) Create(ctx context.Context, mapping *domain.GenusExperienceMapping) (primitive.ObjectID, error) {
	if _, err := r.GetByPair(ctx, mapping.Genus, mapping.ExperienceRange); err == nil {
		return primitive.NilObjectID, repository.ErrConflict
	}
	mapping.ID = primitive.NewObjectID()
	r.mappings = append(r.mappings, *mapping)
	return mapping.ID, nil
}

func (r *fakeMappingRepo) Update(ctx context.Context, id primitive.ObjectID, genus, experienceRange string) (*domain.GenusExperienceMapping, error) {
	for _, m := range r.mappings {
		if m.ID != id && m.Genus == genus && m.ExperienceRange == experienceRange {
			return nil, repository.ErrConflict
		}
	}
	for i := range r.mappings {
		if r.mappings[i].ID == id {
			r.mappings[i].Genus = genus
			r.mappings[i].ExperienceRange = experienceRange
			mm := r.mappings[i]
			return &mm, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeMappingRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i := range r.mappings {
		if r.mappings[i].ID == id {
			r.mappings = append(r.mappings[:i], r.mappings[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakePlanRepo struct {
	plans []domain.TraineePlan
}

func (r *fakePlanRepo) GetAll(ctx context.Context) ([]domain.TraineePlan, error) {
	out := make([]domain.TraineePlan, len(r.plans))
	copy(out, r.plans)
	return out, nil
}

func (r *fakePlanRepo) GetByEmail(ctx context.Context, email string) (*domain.TraineePlan, error) {
	for _, p := range r.plans {
		if p.UserDetails.Email == email {
			pp := p
			return &pp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) Create(ctx context.Context, plan *domain.TraineePlan) (primitive.ObjectID, error) {
	if _, err := r.GetByEmail(ctx, plan.UserDetails.Email); err == nil {
		return primitive.NilObjectID, repository.ErrConflict
	}
	plan.ID = primitive.NewObjectID()
	r.plans = append(r.plans, *plan)
	return plan.ID, nil
}

func (r *fakePlanRepo) ReplaceItems(ctx context.Context, email string, items []domain.PlanItem) (*domain.TraineePlan, error) {
	for i := range r.plans {
		if r.plans[i].UserDetails.Email == email {
			r.plans[i].TrainingPlanDetails = items
			pp := r.plans[i]
			return &pp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i := range r.plans {
		if r.plans[i].ID == id {
			r.plans = append(r.plans[:i], r.plans[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
