package service

import (
	"context"
	"errors"
	"log"

	"skillmatrix/training-app/internal/domain"
	"skillmatrix/training-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrMappingNotFound   = errors.New("experience-genus mapping not found")
	ErrMappingExists     = errors.New("mapping with this genus and experience range already exists")
	ErrMappingReferenced = errors.New("deletion not allowed as the given genus is present in master data")
)

// MappingUpdateResult carries the updated mapping plus how many master rows
// the cascade touched, so callers can tell whether the genus was present in
// master data at all.
type MappingUpdateResult struct {
	Mapping            *domain.GenusExperienceMapping
	MasterRowsAffected int64
}

// MappingError reports a single failed item of a bulk add.
type MappingError struct {
	Genus           string `json:"genus"`
	ExperienceRange string `json:"experienceRange"`
	Error           string `json:"error"`
}

// MappingService manages genus/experience-range pairs and keeps the master
// matrix consistent when a genus is renamed or removed.
type MappingService interface {
	GetAllMappings(ctx context.Context) ([]domain.GenusExperienceMapping, error)
	AddMapping(ctx context.Context, genus, experienceRange string) (*domain.GenusExperienceMapping, error)
	// EditGenus updates both fields; a genus change cascades into master rows.
	EditGenus(ctx context.Context, id primitive.ObjectID, genus, experienceRange string) (*MappingUpdateResult, error)
	// EditExperience updates both fields; genus and range changes each
	// cascade into master rows.
	EditExperience(ctx context.Context, id primitive.ObjectID, genus, experienceRange string) (*MappingUpdateResult, error)
	// DeleteMapping refuses to remove a mapping whose genus is still
	// referenced by any master row.
	DeleteMapping(ctx context.Context, id primitive.ObjectID, genus string) error
	BulkAddMappings(ctx context.Context, mappings []domain.GenusExperienceMapping) ([]domain.GenusExperienceMapping, []MappingError, error)
}

type mappingService struct {
	mappingRepo repository.MappingRepository
	masterRepo  repository.MasterRepository
}

// NewMappingService creates a new instance of mappingService.
func NewMappingService(mappingRepo repository.MappingRepository, masterRepo repository.MasterRepository) MappingService {
	return &mappingService{
		mappingRepo: mappingRepo,
		masterRepo:  masterRepo,
	}
}

func (s *mappingService) GetAllMappings(ctx context.Context) ([]domain.GenusExperienceMapping, error) {
	return s.mappingRepo.GetAll(ctx)
}

// AddMapping creates a mapping; the exact (genus, experienceRange) pair must
// not already exist.
func (s *mappingService) AddMapping(ctx context.Context, genus, experienceRange string) (*domain.GenusExperienceMapping, error) {
	if genus == "" || experienceRange == "" {
		return nil, ErrValidationFailed
	}

	_, err := s.mappingRepo.GetByPair(ctx, genus, experienceRange)
	if err == nil {
		return nil, ErrMappingExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	mapping := &domain.GenusExperienceMapping{
		Genus:           genus,
		ExperienceRange: experienceRange,
	}
	if _, err := s.mappingRepo.Create(ctx, mapping); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrMappingExists
		}
		return nil, err
	}
	return mapping, nil
}

// EditGenus rewrites a mapping and, when the genus value changed, bulk-renames
// the genus across master rows. The mapping is written first; the master-side
// intent is logged before the cascade so a partial failure is repairable.
func (s *mappingService) EditGenus(ctx context.Context, id primitive.ObjectID, genus, experienceRange string) (*MappingUpdateResult, error) {
	if genus == "" || experienceRange == "" {
		return nil, ErrValidationFailed
	}

	existing, err := s.mappingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMappingNotFound
		}
		return nil, err
	}
	oldGenus := existing.Genus

	updated, err := s.mappingRepo.Update(ctx, id, genus, experienceRange)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMappingNotFound
		}
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrMappingExists
		}
		return nil, err
	}

	result := &MappingUpdateResult{Mapping: updated}
	if genus != oldGenus {
		log.Printf("mapping: cascading genus rename %q -> %q into master matrix", oldGenus, genus)
		affected, err := s.masterRepo.UpdateGenus(ctx, oldGenus, genus)
		if err != nil {
			log.Printf("WARN: master matrix genus rename failed after mapping update: %v", err)
			return result, err
		}
		result.MasterRowsAffected = affected
	}
	return result, nil
}

// EditExperience rewrites a mapping and cascades both a genus change and an
// experience-range change into the master rows of that genus.
func (s *mappingService) EditExperience(ctx context.Context, id primitive.ObjectID, genus, experienceRange string) (*MappingUpdateResult, error) {
	if genus == "" || experienceRange == "" {
		return nil, ErrValidationFailed
	}

	existing, err := s.mappingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMappingNotFound
		}
		return nil, err
	}
	oldGenus := existing.Genus
	oldRange := existing.ExperienceRange

	updated, err := s.mappingRepo.Update(ctx, id, genus, experienceRange)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMappingNotFound
		}
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrMappingExists
		}
		return nil, err
	}

	result := &MappingUpdateResult{Mapping: updated}

	if genus != oldGenus {
		log.Printf("mapping: cascading genus rename %q -> %q into master matrix", oldGenus, genus)
		if _, err := s.masterRepo.UpdateGenus(ctx, oldGenus, genus); err != nil {
			log.Printf("WARN: master matrix genus rename failed after mapping update: %v", err)
			return result, err
		}
	}

	log.Printf("mapping: cascading experience range %q -> %q for genus %q into master matrix", oldRange, experienceRange, genus)
	affected, err := s.masterRepo.UpdateExperienceRange(ctx, genus, oldRange, experienceRange)
	if err != nil {
		log.Printf("WARN: master matrix experience-range update failed after mapping update: %v", err)
		return result, err
	}
	result.MasterRowsAffected = affected
	return result, nil
}

// DeleteMapping removes a mapping unless master rows still reference its
// genus. The store does not enforce this; the check here is the only guard.
func (s *mappingService) DeleteMapping(ctx context.Context, id primitive.ObjectID, genus string) error {
	if genus == "" {
		return ErrValidationFailed
	}

	_, err := s.mappingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMappingNotFound
		}
		return err
	}

	referenced, err := s.masterRepo.ExistsByGenus(ctx, genus)
	if err != nil {
		return err
	}
	if referenced {
		return ErrMappingReferenced
	}

	return s.mappingRepo.Delete(ctx, id)
}

// BulkAddMappings inserts a batch of pairs one by one, collecting per-item
// errors instead of failing the batch.
func (s *mappingService) BulkAddMappings(ctx context.Context, mappings []domain.GenusExperienceMapping) ([]domain.GenusExperienceMapping, []MappingError, error) {
	if len(mappings) == 0 {
		return nil, nil, ErrValidationFailed
	}

	created := []domain.GenusExperienceMapping{}
	errs := []MappingError{}
	for _, m := range mappings {
		mapping, err := s.AddMapping(ctx, m.Genus, m.ExperienceRange)
		if err != nil {
			errs = append(errs, MappingError{
				Genus:           m.Genus,
				ExperienceRange: m.ExperienceRange,
				Error:           err.Error(),
			})
			continue
		}
		created = append(created, *mapping)
	}
	return created, errs, nil
}
