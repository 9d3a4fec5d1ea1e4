package api

import (
	"errors"
	"net/http"
	"time"

	"skillmatrix/training-app/internal/domain"
	"skillmatrix/training-app/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler holds the trainee plan service dependencies. The user service
// is needed to resolve the calling trainee's email for self reads.
type PlanHandler struct {
	planService service.PlanService
	userService service.UserService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService, userService service.UserService) *PlanHandler {
	return &PlanHandler{planService: planService, userService: userService}
}

// --- DTOs ---

type PlanUserDetailsRequest struct {
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

type PlanItemRequest struct {
	ExperienceRange string            `json:"experienceRange" binding:"required"`
	Genus           string            `json:"genus" binding:"required"`
	Category        string            `json:"category" binding:"required"`
	Skills          string            `json:"skills" binding:"required"`
	MustHaveSkill   domain.Importance `json:"mustHaveSkill" binding:"required"`
	CourseDuration  string            `json:"courseDuration"`
	// The first row's start date anchors the recomputed chain; submitted
	// end dates are recomputed server-side.
	CourseStartDate time.Time `json:"courseStartDate" binding:"required"`
	CourseEndDate   time.Time `json:"courseEndDate"`
}

type SavePlanRequest struct {
	UserDetails         PlanUserDetailsRequest `json:"userDetails" binding:"required"`
	TrainingPlanDetails []PlanItemRequest      `json:"trainingPlanDetails" binding:"required,min=1,dive"`
}

func (r SavePlanRequest) toDomain() (domain.PlanUserDetails, []domain.PlanItem) {
	details := domain.PlanUserDetails{
		Firstname: r.UserDetails.Firstname,
		Lastname:  r.UserDetails.Lastname,
		Email:     r.UserDetails.Email,
	}
	items := make([]domain.PlanItem, len(r.TrainingPlanDetails))
	for i, item := range r.TrainingPlanDetails {
		items[i] = domain.PlanItem{
			ExperienceRange: item.ExperienceRange,
			Genus:           item.Genus,
			Category:        item.Category,
			Skills:          item.Skills,
			MustHaveSkill:   item.MustHaveSkill,
			CourseDuration:  item.CourseDuration,
			CourseStartDate: item.CourseStartDate,
			CourseEndDate:   item.CourseEndDate,
		}
	}
	return details, items
}

// --- Handler Methods ---

// CreatePlan stores a new finalized plan for a trainee.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req SavePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "User details and training plan details are required")
		return
	}

	details, items := req.toDomain()
	created, err := h.planService.CreatePlan(c.Request.Context(), domain.TraineePlan{
		UserDetails:         details,
		TrainingPlanDetails: items,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanAlreadyExists):
			abortWithError(c, http.StatusConflict, "A training plan already exists for this trainee")
		case errors.Is(err, service.ErrValidationFailed), errors.Is(err, service.ErrInvalidImportance):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "Trainee plan saved successfully", "plan": created})
}

// UpdatePlan replaces the item list on an existing plan, matched by email.
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	var req SavePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "User details and training plan details are required")
		return
	}

	details, items := req.toDomain()
	updated, err := h.planService.UpdatePlan(c.Request.Context(), details, items)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, "No training plan found for this trainee")
		case errors.Is(err, service.ErrUserDetailsMismatch):
			abortWithError(c, http.StatusBadRequest, "User details do not match the existing plan")
		case errors.Is(err, service.ErrValidationFailed), errors.Is(err, service.ErrInvalidImportance):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Trainee plan updated successfully", "plan": updated})
}

// GetAllPlans returns every stored plan.
func (h *PlanHandler) GetAllPlans(c *gin.Context) {
	plans, err := h.planService.GetAllPlans(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetMyPlan returns the calling trainee's own plan, resolved via the
// authenticated user's email. Admins can use it too but typically have no
// plan of their own.
func (h *PlanHandler) GetMyPlan(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "User not authenticated properly")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}

	plan, err := h.planService.GetPlanByEmail(c.Request.Context(), user.Email)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, "No training plan found for this trainee")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}
	c.JSON(http.StatusOK, plan)
}
