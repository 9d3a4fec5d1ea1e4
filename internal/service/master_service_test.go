package service

import (
	"context"
	"testing"

	"skillmatrix/training-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestExtractGenus(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"combined label", "0-2 - Backend Dev", "Backend Dev"},
		{"plain genus", "Backend Dev", "Backend Dev"},
		{"extra spacing", "  0-2   -   Backend Dev  ", "Backend Dev"},
		{"genus with hyphen but no label", "Front-End", "Front-End"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractGenus(tt.input))
		})
	}
}

func newMasterFixture() (MasterService, *fakeMasterRepo, *fakeCategoryRepo) {
	masterRepo := &fakeMasterRepo{}
	categoryRepo := &fakeCategoryRepo{}
	return NewMasterService(masterRepo, categoryRepo), masterRepo, categoryRepo
}

func TestAddEntry_Validation(t *testing.T) {
	svc, _, _ := newMasterFixture()
	categoryID := primitive.NewObjectID()

	valid := domain.MasterEntry{
		ExperienceRange: "0-2",
		Genus:           "Backend Dev",
		CategoryID:      categoryID,
		Skill:           "Rest Apis",
		Importance:      domain.ImportanceMustHave,
	}

	created, err := svc.AddEntry(context.Background(), valid)
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())

	missing := valid
	missing.Skill = ""
	_, err = svc.AddEntry(context.Background(), missing)
	assert.ErrorIs(t, err, ErrValidationFailed)

	badImportance := valid
	badImportance.Importance = "Nice To Have"
	_, err = svc.AddEntry(context.Background(), badImportance)
	assert.ErrorIs(t, err, ErrInvalidImportance)
}

func TestAddEntries_AnyInvalidRowFailsBatch(t *testing.T) {
	svc, masterRepo, _ := newMasterFixture()
	categoryID := primitive.NewObjectID()

	_, err := svc.AddEntries(context.Background(), []domain.MasterEntry{
		{ExperienceRange: "0-2", Genus: "A", CategoryID: categoryID, Skill: "X", Importance: domain.ImportanceMustHave},
		{ExperienceRange: "0-2", Genus: "A", CategoryID: categoryID, Skill: "Y", Importance: "whatever"},
	})
	assert.ErrorIs(t, err, ErrInvalidImportance)
	assert.Empty(t, masterRepo.entries)

	_, err = svc.AddEntries(context.Background(), nil)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestGetEntriesByGenus(t *testing.T) {
	svc, masterRepo, categoryRepo := newMasterFixture()
	categoryID := primitive.NewObjectID()
	categoryRepo.categories = []domain.Category{{
		ID:     categoryID,
		Name:   "Backend",
		Skills: []domain.Skill{{SkillName: "Rest Apis"}},
	}}
	masterRepo.entries = []domain.MasterEntry{
		{Genus: "Backend Dev", ExperienceRange: "0-2", CategoryID: categoryID, Skill: "Rest Apis", Importance: domain.ImportanceMustHave},
		{Genus: "Frontend Dev", ExperienceRange: "0-2", CategoryID: categoryID, Skill: "React", Importance: domain.ImportanceMustHave},
	}

	// Accepts the combined display label and matches case-insensitively.
	details, err := svc.GetEntriesByGenus(context.Background(), "0-2 - backend dev")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Backend Dev", details[0].Genus)
	assert.Equal(t, "Backend", details[0].Category.Name)

	_, err = svc.GetEntriesByGenus(context.Background(), "Devops")
	assert.ErrorIs(t, err, ErrNoEntriesForGenus)

	_, err = svc.GetEntriesByGenus(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestGetAllEntries_FlaggedJoin(t *testing.T) {
	svc, masterRepo, categoryRepo := newMasterFixture()
	categoryID := primitive.NewObjectID()
	categoryRepo.categories = []domain.Category{{
		ID:   categoryID,
		Name: "Backend",
		Skills: []domain.Skill{
			{SkillName: "Rest Apis"},
			{SkillName: "Graphql", IsSkillDeleted: true},
		},
	}}
	masterRepo.entries = []domain.MasterEntry{
		{Genus: "A", CategoryID: categoryID, Skill: "Rest Apis"},
		{Genus: "A", CategoryID: categoryID, Skill: "Graphql"},
		{Genus: "A", CategoryID: categoryID, Skill: "Gone"},
		{Genus: "A", CategoryID: primitive.NewObjectID(), Skill: "Rest Apis"},
	}

	details, err := svc.GetAllEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 4)

	assert.False(t, details[0].Flagged, "live skill")
	assert.True(t, details[1].Flagged, "soft-deleted skill")
	assert.True(t, details[2].Flagged, "skill missing from category")
	assert.True(t, details[3].Flagged, "dangling category reference")
}

func TestUpdateSkillAcrossMaster(t *testing.T) {
	svc, masterRepo, _ := newMasterFixture()
	masterRepo.entries = []domain.MasterEntry{
		{Genus: "A", Skill: "Old"},
		{Genus: "B", Skill: "Old"},
		{Genus: "C", Skill: "Other"},
	}

	affected, err := svc.UpdateSkillAcrossMaster(context.Background(), "Old", "New")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	_, err = svc.UpdateSkillAcrossMaster(context.Background(), "", "New")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestDeleteAllEntries(t *testing.T) {
	svc, masterRepo, _ := newMasterFixture()
	masterRepo.entries = []domain.MasterEntry{{Genus: "A"}}

	require.NoError(t, svc.DeleteAllEntries(context.Background()))
	assert.Empty(t, masterRepo.entries)
}
