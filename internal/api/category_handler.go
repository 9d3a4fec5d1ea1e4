package api

import (
	"errors"
	"fmt"
	"net/http"

	"skillmatrix/training-app/internal/domain"
	"skillmatrix/training-app/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryHandler holds the catalog service dependency.
type CategoryHandler struct {
	catalogService service.CatalogService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(catalogService service.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalogService: catalogService}
}

// --- DTOs ---

type AddSkillRequest struct {
	CategoryName   string `json:"categoryName" binding:"required"`
	Skill          string `json:"skill" binding:"required"`
	CourseDuration string `json:"courseDuration" binding:"required"`
}

type SkillRequest struct {
	CategoryName string `json:"categoryName" binding:"required"`
	Skill        string `json:"skill" binding:"required"`
}

type EditSkillRequest struct {
	CategoryName string `json:"categoryName" binding:"required"`
	OldSkill     string `json:"oldSkill" binding:"required"`
	NewSkill     string `json:"newSkill" binding:"required"`
}

type EditCourseDurationRequest struct {
	CategoryName   string `json:"categoryName" binding:"required"`
	OldSkill       string `json:"oldSkill" binding:"required"`
	CourseDuration string `json:"courseDuration" binding:"required"`
}

type DeleteCategoryRequest struct {
	CategoryName string `json:"categoryName" binding:"required"`
}

type EditCategoryNameRequest struct {
	CategoryName    string `json:"categoryName" binding:"required"`
	NewCategoryName string `json:"newCategoryName" binding:"required"`
}

// --- Handler Methods ---

// GetCategories returns every category with its skills.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.GetAllCategories(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Error fetching categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// AddSkill appends a skill, creating the category when absent. Responds with
// the refreshed full category list.
func (h *CategoryHandler) AddSkill(c *gin.Context) {
	var req AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Category name, skill, and course duration are required")
		return
	}

	categories, err := h.catalogService.AddSkill(c.Request.Context(), req.CategoryName, req.Skill, req.CourseDuration)
	if err != nil {
		if errors.Is(err, service.ErrSkillExists) || errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}
	c.JSON(http.StatusOK, categories)
}

// EditSkill renames a skill and mirrors the rename into the master matrix.
func (h *CategoryHandler) EditSkill(c *gin.Context) {
	var req EditSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Category name, old skill, and new skill are required")
		return
	}

	category, masterAffected, err := h.catalogService.EditSkill(c.Request.Context(), req.CategoryName, req.OldSkill, req.NewSkill)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound), errors.Is(err, service.ErrSkillNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":                "Skill updated successfully",
		"category":           category,
		"masterRowsAffected": masterAffected,
	})
}

// EditCourseDuration updates the duration of a non-deleted skill.
func (h *CategoryHandler) EditCourseDuration(c *gin.Context) {
	var req EditCourseDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Category name, old skill, and course duration are required")
		return
	}

	category, err := h.catalogService.EditCourseDuration(c.Request.Context(), req.CategoryName, req.OldSkill, req.CourseDuration)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound), errors.Is(err, service.ErrSkillNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Course duration updated successfully", "category": category})
}

// ToggleSkillDeleted flips a skill's deleted flag.
func (h *CategoryHandler) ToggleSkillDeleted(c *gin.Context) {
	var req SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Category name and skill are required")
		return
	}

	categories, err := h.catalogService.ToggleSkillDeleted(c.Request.Context(), req.CategoryName, req.Skill)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSkillNotFound):
			abortWithError(c, http.StatusBadRequest, "Skill not found in this category")
		default:
			abortWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ToggleCategoryDeleted flips the category flag, cascading deletion to skills.
func (h *CategoryHandler) ToggleCategoryDeleted(c *gin.Context) {
	var req DeleteCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Category name is required")
		return
	}

	categories, err := h.catalogService.ToggleCategoryDeleted(c.Request.Context(), req.CategoryName)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}
	c.JSON(http.StatusOK, categories)
}

// EditCategoryName renames a category.
func (h *CategoryHandler) EditCategoryName(c *gin.Context) {
	var req EditCategoryNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Both current category name and new category name are required")
		return
	}

	categories, err := h.catalogService.EditCategoryName(c.Request.Context(), req.CategoryName, req.NewCategoryName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrCategoryExists):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}
	c.JSON(http.StatusOK, categories)
}

// BulkAddCategories inserts pre-built category documents (seed path).
func (h *CategoryHandler) BulkAddCategories(c *gin.Context) {
	var req []domain.Category
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Categories must be provided as an array: %v", err))
		return
	}

	categories, err := h.catalogService.BulkAddCategories(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}
	c.JSON(http.StatusOK, categories)
}
