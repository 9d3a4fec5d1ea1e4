package service

import (
	"context"
	"errors"
	"log"

	"skillmatrix/training-app/internal/domain"
	"skillmatrix/training-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("a category with the new name already exists")
	ErrSkillNotFound    = errors.New("skill not found or has been deleted")
	ErrSkillExists      = errors.New("skill already exists in this category")
	ErrValidationFailed = errors.New("validation failed")
)

// CatalogService manages categories and their embedded skills. Every name
// that enters the catalog is normalized first; normalized names are the
// lookup keys.
type CatalogService interface {
	GetAllCategories(ctx context.Context) ([]domain.Category, error)
	AddSkill(ctx context.Context, categoryName, skillName, courseDuration string) ([]domain.Category, error)
	// EditSkill renames a skill and mirrors the rename into the master
	// matrix. Returns the master rows affected by the mirror step.
	EditSkill(ctx context.Context, categoryName, oldSkill, newSkill string) (*domain.Category, int64, error)
	EditCourseDuration(ctx context.Context, categoryName, skillName, courseDuration string) (*domain.Category, error)
	ToggleSkillDeleted(ctx context.Context, categoryName, skillName string) ([]domain.Category, error)
	ToggleCategoryDeleted(ctx context.Context, categoryName string) ([]domain.Category, error)
	EditCategoryName(ctx context.Context, categoryName, newCategoryName string) ([]domain.Category, error)
	BulkAddCategories(ctx context.Context, categories []domain.Category) ([]domain.Category, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	masterRepo   repository.MasterRepository
}

// NewCatalogService creates a new instance of catalogService. The master
// repository is needed because skill renames cascade into the matrix.
func NewCatalogService(categoryRepo repository.CategoryRepository, masterRepo repository.MasterRepository) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		masterRepo:   masterRepo,
	}
}

func (s *catalogService) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

// AddSkill appends a skill to a category, creating the category when absent.
// A normalized duplicate (deleted or not) is a conflict.
func (s *catalogService) AddSkill(ctx context.Context, categoryName, skillName, courseDuration string) ([]domain.Category, error) {
	categoryName = domain.NormalizeName(categoryName)
	skillName = domain.NormalizeName(skillName)
	if categoryName == "" || skillName == "" || courseDuration == "" {
		return nil, ErrValidationFailed
	}

	category, err := s.categoryRepo.GetByName(ctx, categoryName)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		newCategory := &domain.Category{
			Name: categoryName,
			Skills: []domain.Skill{
				{SkillName: skillName, CourseDuration: courseDuration},
			},
		}
		if _, err := s.categoryRepo.Create(ctx, newCategory); err != nil {
			return nil, err
		}
		return s.categoryRepo.GetAll(ctx)
	}

	if category.FindSkill(skillName, false) != -1 {
		return nil, ErrSkillExists
	}

	category.Skills = append(category.Skills, domain.Skill{
		SkillName:      skillName,
		CourseDuration: courseDuration,
	})
	if err := s.categoryRepo.Replace(ctx, category); err != nil {
		return nil, err
	}
	return s.categoryRepo.GetAll(ctx)
}

// EditSkill renames a non-deleted skill, then mirrors the rename across the
// master matrix. The two writes are not transactional; the category side is
// written first and the mirror's intent is logged so a partial failure can
// be repaired by re-running the master-side rename.
func (s *catalogService) EditSkill(ctx context.Context, categoryName, oldSkill, newSkill string) (*domain.Category, int64, error) {
	categoryName = domain.NormalizeName(categoryName)
	oldSkill = domain.NormalizeName(oldSkill)
	newSkill = domain.NormalizeName(newSkill)
	if categoryName == "" || oldSkill == "" || newSkill == "" {
		return nil, 0, ErrValidationFailed
	}

	category, err := s.categoryRepo.GetByName(ctx, categoryName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, 0, ErrCategoryNotFound
		}
		return nil, 0, err
	}

	idx := category.FindSkill(oldSkill, true)
	if idx == -1 {
		return nil, 0, ErrSkillNotFound
	}

	category.Skills[idx].SkillName = newSkill
	if err := s.categoryRepo.Replace(ctx, category); err != nil {
		return nil, 0, err
	}

	log.Printf("catalog: mirroring skill rename %q -> %q into master matrix", oldSkill, newSkill)
	affected, err := s.masterRepo.UpdateSkill(ctx, oldSkill, newSkill)
	if err != nil {
		// Category side is already renamed; report the failure so the
		// caller can re-run the master-side rename.
		log.Printf("WARN: master matrix skill rename failed after category update: %v", err)
		return category, 0, err
	}

	return category, affected, nil
}

// EditCourseDuration updates the duration of a non-deleted skill.
func (s *catalogService) EditCourseDuration(ctx context.Context, categoryName, skillName, courseDuration string) (*domain.Category, error) {
	categoryName = domain.NormalizeName(categoryName)
	skillName = domain.NormalizeName(skillName)
	if categoryName == "" || skillName == "" || courseDuration == "" {
		return nil, ErrValidationFailed
	}

	category, err := s.categoryRepo.GetByName(ctx, categoryName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	idx := category.FindSkill(skillName, true)
	if idx == -1 {
		return nil, ErrSkillNotFound
	}

	category.Skills[idx].CourseDuration = courseDuration
	if err := s.categoryRepo.Replace(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ToggleSkillDeleted flips a skill's deleted flag. Deleted skills can be
// restored this way; the lookup here intentionally includes deleted ones.
func (s *catalogService) ToggleSkillDeleted(ctx context.Context, categoryName, skillName string) ([]domain.Category, error) {
	categoryName = domain.NormalizeName(categoryName)
	skillName = domain.NormalizeName(skillName)
	if categoryName == "" || skillName == "" {
		return nil, ErrValidationFailed
	}

	category, err := s.categoryRepo.GetByName(ctx, categoryName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	idx := category.FindSkill(skillName, false)
	if idx == -1 {
		return nil, ErrSkillNotFound
	}

	category.Skills[idx].IsSkillDeleted = !category.Skills[idx].IsSkillDeleted
	if err := s.categoryRepo.Replace(ctx, category); err != nil {
		return nil, err
	}
	return s.categoryRepo.GetAll(ctx)
}

// ToggleCategoryDeleted flips the category flag. Transitioning to deleted
// forces every skill's deleted flag to true; restoring the category does not
// restore the skills.
func (s *catalogService) ToggleCategoryDeleted(ctx context.Context, categoryName string) ([]domain.Category, error) {
	categoryName = domain.NormalizeName(categoryName)
	if categoryName == "" {
		return nil, ErrValidationFailed
	}

	category, err := s.categoryRepo.GetByName(ctx, categoryName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	category.IsCategoryDeleted = !category.IsCategoryDeleted
	if category.IsCategoryDeleted {
		for i := range category.Skills {
			category.Skills[i].IsSkillDeleted = true
		}
	}

	if err := s.categoryRepo.Replace(ctx, category); err != nil {
		return nil, err
	}
	return s.categoryRepo.GetAll(ctx)
}

// EditCategoryName renames a category; the new normalized name must be free.
func (s *catalogService) EditCategoryName(ctx context.Context, categoryName, newCategoryName string) ([]domain.Category, error) {
	categoryName = domain.NormalizeName(categoryName)
	newCategoryName = domain.NormalizeName(newCategoryName)
	if categoryName == "" || newCategoryName == "" {
		return nil, ErrValidationFailed
	}

	category, err := s.categoryRepo.GetByName(ctx, categoryName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	_, err = s.categoryRepo.GetByName(ctx, newCategoryName)
	if err == nil {
		return nil, ErrCategoryExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	category.Name = newCategoryName
	if err := s.categoryRepo.Replace(ctx, category); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return s.categoryRepo.GetAll(ctx)
}

// BulkAddCategories normalizes and inserts a batch of category documents
// wholesale (seed/testing path). Skills without a duration default to "50".
func (s *catalogService) BulkAddCategories(ctx context.Context, categories []domain.Category) ([]domain.Category, error) {
	if len(categories) == 0 {
		return nil, ErrValidationFailed
	}

	for i := range categories {
		categories[i].Name = domain.NormalizeName(categories[i].Name)
		for j := range categories[i].Skills {
			categories[i].Skills[j].SkillName = domain.NormalizeName(categories[i].Skills[j].SkillName)
			if categories[i].Skills[j].CourseDuration == "" {
				categories[i].Skills[j].CourseDuration = "50"
			}
		}
	}

	if err := s.categoryRepo.InsertMany(ctx, categories); err != nil {
		return nil, err
	}
	return s.categoryRepo.GetAll(ctx)
}
