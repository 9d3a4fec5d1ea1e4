package service

import (
	"context"
	"errors"
	"strings"

	"skillmatrix/training-app/internal/domain"
	"skillmatrix/training-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrInvalidImportance = errors.New("importance must be Must Have or Good to Have")
	ErrNoEntriesForGenus = errors.New("no entries found for the given genus")
)

// MasterService manages the requirement matrix.
type MasterService interface {
	GetAllEntries(ctx context.Context) ([]domain.MasterEntryDetail, error)
	AddEntry(ctx context.Context, entry domain.MasterEntry) (*domain.MasterEntry, error)
	AddEntries(ctx context.Context, entries []domain.MasterEntry) ([]domain.MasterEntry, error)
	// GetEntriesByGenus matches the genus value exactly, case-insensitively.
	GetEntriesByGenus(ctx context.Context, genus string) ([]domain.MasterEntryDetail, error)
	// UpdateSkillAcrossMaster bulk-renames the denormalized skill string.
	UpdateSkillAcrossMaster(ctx context.Context, oldSkill, newSkill string) (int64, error)
	DeleteAllEntries(ctx context.Context) error
}

type masterService struct {
	masterRepo   repository.MasterRepository
	categoryRepo repository.CategoryRepository
}

// NewMasterService creates a new instance of masterService.
func NewMasterService(masterRepo repository.MasterRepository, categoryRepo repository.CategoryRepository) MasterService {
	return &masterService{
		masterRepo:   masterRepo,
		categoryRepo: categoryRepo,
	}
}

// ExtractGenus pulls the genus out of a client-supplied value that may be a
// combined "<experience range> - <genus>" display label. Hyphen spacing is
// collapsed first; a value without a label prefix is returned as-is rather
// than rejected.
func ExtractGenus(value string) string {
	collapsed := strings.Join(strings.Fields(value), " ")
	if _, after, found := strings.Cut(collapsed, " - "); found {
		return strings.TrimSpace(after)
	}
	return strings.TrimSpace(collapsed)
}

// GetAllEntries returns the matrix joined with category documents.
func (s *masterService) GetAllEntries(ctx context.Context) ([]domain.MasterEntryDetail, error) {
	entries, err := s.masterRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.joinCategories(ctx, entries)
}

// AddEntry validates and inserts one matrix row.
func (s *masterService) AddEntry(ctx context.Context, entry domain.MasterEntry) (*domain.MasterEntry, error) {
	if entry.ExperienceRange == "" || entry.Genus == "" || entry.CategoryID.IsZero() || entry.Skill == "" {
		return nil, ErrValidationFailed
	}
	if !entry.Importance.Valid() {
		return nil, ErrInvalidImportance
	}

	if _, err := s.masterRepo.Create(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// AddEntries validates and bulk-inserts matrix rows; any invalid row fails
// the whole batch before anything is written.
func (s *masterService) AddEntries(ctx context.Context, entries []domain.MasterEntry) ([]domain.MasterEntry, error) {
	if len(entries) == 0 {
		return nil, ErrValidationFailed
	}
	for _, e := range entries {
		if e.ExperienceRange == "" || e.Genus == "" || e.CategoryID.IsZero() || e.Skill == "" {
			return nil, ErrValidationFailed
		}
		if !e.Importance.Valid() {
			return nil, ErrInvalidImportance
		}
	}
	return s.masterRepo.InsertMany(ctx, entries)
}

// GetEntriesByGenus returns the joined rows for one genus.
func (s *masterService) GetEntriesByGenus(ctx context.Context, genus string) ([]domain.MasterEntryDetail, error) {
	if genus == "" {
		return nil, ErrValidationFailed
	}

	entries, err := s.masterRepo.GetByGenus(ctx, ExtractGenus(genus))
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoEntriesForGenus
	}
	return s.joinCategories(ctx, entries)
}

// UpdateSkillAcrossMaster bulk-renames the skill string across the matrix.
func (s *masterService) UpdateSkillAcrossMaster(ctx context.Context, oldSkill, newSkill string) (int64, error) {
	if oldSkill == "" || newSkill == "" {
		return 0, ErrValidationFailed
	}
	return s.masterRepo.UpdateSkill(ctx, oldSkill, newSkill)
}

// DeleteAllEntries wipes the matrix.
func (s *masterService) DeleteAllEntries(ctx context.Context) error {
	return s.masterRepo.DeleteAll(ctx)
}

// joinCategories resolves category references and mirrors the referenced
// skill's soft-delete state into Flagged. Rows pointing at a vanished
// category or skill are flagged rather than dropped.
func (s *masterService) joinCategories(ctx context.Context, entries []domain.MasterEntry) ([]domain.MasterEntryDetail, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID.Hex()] = c
	}

	details := make([]domain.MasterEntryDetail, 0, len(entries))
	for _, e := range entries {
		detail := domain.MasterEntryDetail{MasterEntry: e}
		category, ok := byID[e.CategoryID.Hex()]
		if !ok {
			detail.Flagged = true
			details = append(details, detail)
			continue
		}
		detail.Category = category

		idx := category.FindSkill(e.Skill, false)
		if idx == -1 || category.Skills[idx].IsSkillDeleted {
			detail.Flagged = true
		}
		details = append(details, detail)
	}
	return details, nil
}
