package service

import (
	"context"
	"errors"
	"strconv"

	"skillmatrix/training-app/internal/domain"
	"skillmatrix/training-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound        = errors.New("trainee plan not found")
	ErrPlanAlreadyExists   = errors.New("a plan already exists for this trainee")
	ErrUserDetailsMismatch = errors.New("user details do not match")
)

// PlanService manages finalized per-trainee training plans. On every write
// the item list is re-sorted into display order and the date chain is
// recomposed from the first row, so persisted plans always satisfy the
// contiguous, non-overlapping schedule invariant regardless of what the
// caller sent.
type PlanService interface {
	GetAllPlans(ctx context.Context) ([]domain.TraineePlan, error)
	GetPlanByEmail(ctx context.Context, email string) (*domain.TraineePlan, error)
	CreatePlan(ctx context.Context, plan domain.TraineePlan) (*domain.TraineePlan, error)
	UpdatePlan(ctx context.Context, userDetails domain.PlanUserDetails, items []domain.PlanItem) (*domain.TraineePlan, error)
}

type planService struct {
	planRepo repository.TraineePlanRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.TraineePlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

func (s *planService) GetAllPlans(ctx context.Context) ([]domain.TraineePlan, error) {
	return s.planRepo.GetAll(ctx)
}

func (s *planService) GetPlanByEmail(ctx context.Context, email string) (*domain.TraineePlan, error) {
	if email == "" {
		return nil, ErrValidationFailed
	}
	plan, err := s.planRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

// CreatePlan persists a new plan. One document per trainee email.
func (s *planService) CreatePlan(ctx context.Context, plan domain.TraineePlan) (*domain.TraineePlan, error) {
	if err := validatePlanInput(plan.UserDetails, plan.TrainingPlanDetails); err != nil {
		return nil, err
	}

	plan.TrainingPlanDetails = composePlanItems(plan.TrainingPlanDetails)

	if _, err := s.planRepo.Create(ctx, &plan); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrPlanAlreadyExists
		}
		return nil, err
	}
	return &plan, nil
}

// UpdatePlan replaces the item list of an existing plan. The stored identity
// snapshot must match the supplied firstname/lastname for the given email.
func (s *planService) UpdatePlan(ctx context.Context, userDetails domain.PlanUserDetails, items []domain.PlanItem) (*domain.TraineePlan, error) {
	if err := validatePlanInput(userDetails, items); err != nil {
		return nil, err
	}

	existing, err := s.planRepo.GetByEmail(ctx, userDetails.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if existing.UserDetails.Firstname != userDetails.Firstname ||
		existing.UserDetails.Lastname != userDetails.Lastname {
		return nil, ErrUserDetailsMismatch
	}

	composed := composePlanItems(items)

	updated, err := s.planRepo.ReplaceItems(ctx, userDetails.Email, composed)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return updated, nil
}

func validatePlanInput(userDetails domain.PlanUserDetails, items []domain.PlanItem) error {
	if userDetails.Firstname == "" || userDetails.Lastname == "" || userDetails.Email == "" {
		return ErrValidationFailed
	}
	if len(items) == 0 {
		return ErrValidationFailed
	}
	for _, item := range items {
		if item.ExperienceRange == "" || item.Genus == "" || item.Category == "" || item.Skills == "" {
			return ErrValidationFailed
		}
		if !item.MustHaveSkill.Valid() {
			return ErrInvalidImportance
		}
		if item.CourseStartDate.IsZero() {
			return ErrValidationFailed
		}
	}
	return nil
}

// composePlanItems sorts items into display order and recomposes the date
// chain from the first row, anchored on that row's submitted start date.
func composePlanItems(items []domain.PlanItem) []domain.PlanItem {
	rows := make([]ScheduleRow, len(items))
	for i, item := range items {
		rows[i] = ScheduleRow{
			ExperienceRange: item.ExperienceRange,
			Genus:           item.Genus,
			Category:        item.Category,
			Skill:           item.Skills,
			Importance:      item.MustHaveSkill,
			DurationDays:    ParseCourseDuration(item.CourseDuration),
			Start:           item.CourseStartDate,
			End:             item.CourseEndDate,
		}
	}

	SortScheduleRows(rows)
	ComposeFrom(rows, 0, rows[0].Start)

	composed := make([]domain.PlanItem, len(items))
	for i, row := range rows {
		composed[i] = domain.PlanItem{
			ExperienceRange: row.ExperienceRange,
			Genus:           row.Genus,
			Category:        row.Category,
			Skills:          row.Skill,
			MustHaveSkill:   row.Importance,
			CourseDuration:  strconv.Itoa(row.DurationDays),
			CourseStartDate: row.Start,
			CourseEndDate:   row.End,
		}
	}
	return composed
}
