package service

import (
	"context"
	"testing"
	"time"

	"skillmatrix/training-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planFixtureItems(anchor time.Time) []domain.PlanItem {
	// Deliberately out of display order and with bogus end dates; the
	// service must fix both.
	return []domain.PlanItem{
		{
			ExperienceRange: "2-5",
			Genus:           "Backend Dev",
			Category:        "Databases",
			Skills:          "Mongodb",
			MustHaveSkill:   domain.ImportanceGoodToHave,
			CourseDuration:  "5",
			CourseStartDate: anchor.AddDate(0, 1, 0),
			CourseEndDate:   anchor,
		},
		{
			ExperienceRange: "0-2",
			Genus:           "Backend Dev",
			Category:        "Apis",
			Skills:          "Rest Apis",
			MustHaveSkill:   domain.ImportanceMustHave,
			CourseDuration:  "10",
			CourseStartDate: anchor,
			CourseEndDate:   anchor,
		},
	}
}

func planFixtureDetails() domain.PlanUserDetails {
	return domain.PlanUserDetails{
		Firstname: "Asha",
		Lastname:  "Verma",
		Email:     "asha.verma@example.com",
	}
}

func TestCreatePlan_RecomposesSchedule(t *testing.T) {
	repo := &fakePlanRepo{}
	svc := NewPlanService(repo)
	anchor := day(2026, time.April, 1)

	created, err := svc.CreatePlan(context.Background(), domain.TraineePlan{
		UserDetails:         planFixtureDetails(),
		TrainingPlanDetails: planFixtureItems(anchor),
	})
	require.NoError(t, err)
	require.Len(t, created.TrainingPlanDetails, 2)

	// The 0-2 row sorts first and anchors the chain on its own start date.
	first, second := created.TrainingPlanDetails[0], created.TrainingPlanDetails[1]
	assert.Equal(t, "Rest Apis", first.Skills)
	assert.Equal(t, anchor, first.CourseStartDate)
	assert.Equal(t, anchor.AddDate(0, 0, 10), first.CourseEndDate)

	assert.Equal(t, "Mongodb", second.Skills)
	assert.Equal(t, first.CourseEndDate.AddDate(0, 0, 1), second.CourseStartDate)
	assert.Equal(t, second.CourseStartDate.AddDate(0, 0, 5), second.CourseEndDate)
}

func TestCreatePlan_OnePlanPerTrainee(t *testing.T) {
	repo := &fakePlanRepo{}
	svc := NewPlanService(repo)
	anchor := day(2026, time.April, 1)

	plan := domain.TraineePlan{
		UserDetails:         planFixtureDetails(),
		TrainingPlanDetails: planFixtureItems(anchor),
	}
	_, err := svc.CreatePlan(context.Background(), plan)
	require.NoError(t, err)

	_, err = svc.CreatePlan(context.Background(), domain.TraineePlan{
		UserDetails:         planFixtureDetails(),
		TrainingPlanDetails: planFixtureItems(anchor),
	})
	assert.ErrorIs(t, err, ErrPlanAlreadyExists)
}

func TestCreatePlan_Validation(t *testing.T) {
	svc := NewPlanService(&fakePlanRepo{})
	anchor := day(2026, time.April, 1)

	details := planFixtureDetails()
	details.Email = ""
	_, err := svc.CreatePlan(context.Background(), domain.TraineePlan{
		UserDetails:         details,
		TrainingPlanDetails: planFixtureItems(anchor),
	})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.CreatePlan(context.Background(), domain.TraineePlan{
		UserDetails: planFixtureDetails(),
	})
	assert.ErrorIs(t, err, ErrValidationFailed)

	items := planFixtureItems(anchor)
	items[0].MustHaveSkill = "Optional"
	_, err = svc.CreatePlan(context.Background(), domain.TraineePlan{
		UserDetails:         planFixtureDetails(),
		TrainingPlanDetails: items,
	})
	assert.ErrorIs(t, err, ErrInvalidImportance)

	items = planFixtureItems(anchor)
	items[1].CourseStartDate = time.Time{}
	_, err = svc.CreatePlan(context.Background(), domain.TraineePlan{
		UserDetails:         planFixtureDetails(),
		TrainingPlanDetails: items,
	})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestUpdatePlan(t *testing.T) {
	repo := &fakePlanRepo{}
	svc := NewPlanService(repo)
	anchor := day(2026, time.April, 1)

	_, err := svc.CreatePlan(context.Background(), domain.TraineePlan{
		UserDetails:         planFixtureDetails(),
		TrainingPlanDetails: planFixtureItems(anchor),
	})
	require.NoError(t, err)

	newAnchor := day(2026, time.May, 1)
	updated, err := svc.UpdatePlan(context.Background(), planFixtureDetails(), planFixtureItems(newAnchor))
	require.NoError(t, err)
	assert.Equal(t, newAnchor, updated.TrainingPlanDetails[0].CourseStartDate)

	// Identity snapshot must match the stored plan.
	mismatched := planFixtureDetails()
	mismatched.Firstname = "Someone"
	_, err = svc.UpdatePlan(context.Background(), mismatched, planFixtureItems(anchor))
	assert.ErrorIs(t, err, ErrUserDetailsMismatch)

	unknown := planFixtureDetails()
	unknown.Email = "nobody@example.com"
	_, err = svc.UpdatePlan(context.Background(), unknown, planFixtureItems(anchor))
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestGetPlanByEmail(t *testing.T) {
	repo := &fakePlanRepo{}
	svc := NewPlanService(repo)
	anchor := day(2026, time.April, 1)

	_, err := svc.CreatePlan(context.Background(), domain.TraineePlan{
		UserDetails:         planFixtureDetails(),
		TrainingPlanDetails: planFixtureItems(anchor),
	})
	require.NoError(t, err)

	plan, err := svc.GetPlanByEmail(context.Background(), "asha.verma@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Asha", plan.UserDetails.Firstname)

	_, err = svc.GetPlanByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrPlanNotFound)

	_, err = svc.GetPlanByEmail(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidationFailed)
}
