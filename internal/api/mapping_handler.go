package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"skillmatrix/training-app/internal/domain"
	"skillmatrix/training-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MappingHandler holds the mapping service dependency.
type MappingHandler struct {
	mappingService service.MappingService
}

// NewMappingHandler creates a new MappingHandler.
func NewMappingHandler(mappingService service.MappingService) *MappingHandler {
	return &MappingHandler{mappingService: mappingService}
}

// --- DTOs ---

type AddMappingRequest struct {
	Genus           string `json:"genus" binding:"required"`
	ExperienceRange string `json:"experienceRange" binding:"required"`
}

type EditMappingRequest struct {
	ID              string `json:"id" binding:"required"`
	Genus           string `json:"genus" binding:"required"`
	ExperienceRange string `json:"experienceRange" binding:"required"`
}

type DeleteMappingRequest struct {
	ID    string `json:"_id" binding:"required"`
	Genus string `json:"genus" binding:"required"`
}

type BulkAddMappingsRequest struct {
	Mappings []AddMappingRequest `json:"mappings" binding:"required"`
}

// --- Handler Methods ---

// GetMappings lists every genus/experience mapping.
func (h *MappingHandler) GetMappings(c *gin.Context) {
	mappings, err := h.mappingService.GetAllMappings(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, mappings)
}

// AddMapping creates a new pair; exact duplicates are rejected.
func (h *MappingHandler) AddMapping(c *gin.Context) {
	var req AddMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Genus and Experience Range are required")
		return
	}

	mapping, err := h.mappingService.AddMapping(c.Request.Context(), req.Genus, req.ExperienceRange)
	if err != nil {
		if errors.Is(err, service.ErrMappingExists) || errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}
	c.JSON(http.StatusCreated, mapping)
}

// EditGenus updates a mapping; a changed genus cascades into master rows and
// the response reports whether any were touched.
func (h *MappingHandler) EditGenus(c *gin.Context) {
	h.editMapping(c, h.mappingService.EditGenus,
		"Genus and Experience Range updated, including master data.",
		"Genus and Experience Range updated but not present in master data.")
}

// EditExperience updates a mapping; genus and range changes cascade into
// master rows.
func (h *MappingHandler) EditExperience(c *gin.Context) {
	h.editMapping(c, h.mappingService.EditExperience,
		"Experience range and genus updated in master data as well.",
		"Experience range and genus updated in db but not present in master data.")
}

type mappingEditFunc func(ctx context.Context, id primitive.ObjectID, genus, experienceRange string) (*service.MappingUpdateResult, error)

func (h *MappingHandler) editMapping(c *gin.Context, edit mappingEditFunc, affectedMsg, unaffectedMsg string) {
	var req EditMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "ID, Genus, and Experience Range are required")
		return
	}

	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid mapping ID format")
		return
	}

	result, err := edit(c.Request.Context(), id, req.Genus, req.ExperienceRange)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMappingNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrMappingExists), errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}

	msg := unaffectedMsg
	if result.MasterRowsAffected > 0 {
		msg = affectedMsg
	}
	c.JSON(http.StatusOK, gin.H{"updatedMapping": result.Mapping, "msg": msg})
}

// DeleteMapping removes a mapping unless its genus is referenced by master data.
func (h *MappingHandler) DeleteMapping(c *gin.Context) {
	var req DeleteMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "ID and Genus are required for deletion")
		return
	}

	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid mapping ID format")
		return
	}

	err = h.mappingService.DeleteMapping(c.Request.Context(), id, req.Genus)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMappingNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrMappingReferenced):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Genus deleted as it is not present in master data."})
}

// BulkAddMappings inserts a batch of pairs, reporting per-item errors.
func (h *MappingHandler) BulkAddMappings(c *gin.Context) {
	var req BulkAddMappingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("An array of mappings is required: %v", err))
		return
	}

	mappings := make([]domain.GenusExperienceMapping, len(req.Mappings))
	for i, m := range req.Mappings {
		mappings[i] = domain.GenusExperienceMapping{Genus: m.Genus, ExperienceRange: m.ExperienceRange}
	}

	created, itemErrors, err := h.mappingService.BulkAddMappings(c.Request.Context(), mappings)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, "An array of mappings is required")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"createdMappings": created, "errors": itemErrors})
}
