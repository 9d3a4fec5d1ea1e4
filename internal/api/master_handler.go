package api

import (
	"errors"
	"fmt"
	"net/http"

	"skillmatrix/training-app/internal/domain"
	"skillmatrix/training-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MasterHandler holds the master service dependency.
type MasterHandler struct {
	masterService service.MasterService
}

// NewMasterHandler creates a new MasterHandler.
func NewMasterHandler(masterService service.MasterService) *MasterHandler {
	return &MasterHandler{masterService: masterService}
}

// --- DTOs ---

type AddMasterEntryRequest struct {
	ExperienceRange string            `json:"experienceRange" binding:"required"`
	Genus           string            `json:"genus" binding:"required"`
	Category        string            `json:"category" binding:"required"` // Category ObjectID hex
	Skill           string            `json:"skill" binding:"required"`
	Importance      domain.Importance `json:"importance" binding:"required,oneof='Must Have' 'Good to Have'"`
	Flagged         bool              `json:"flagged"`
}

type UpdateMasterSkillRequest struct {
	OldSkill string `json:"oldSkill" binding:"required"`
	NewSkill string `json:"newSkill" binding:"required"`
}

type GetByGenusRequest struct {
	Genus string `json:"genus" binding:"required"`
}

func (r AddMasterEntryRequest) toEntry() (domain.MasterEntry, error) {
	categoryID, err := primitive.ObjectIDFromHex(r.Category)
	if err != nil {
		return domain.MasterEntry{}, err
	}
	return domain.MasterEntry{
		ExperienceRange: r.ExperienceRange,
		Genus:           r.Genus,
		CategoryID:      categoryID,
		Skill:           r.Skill,
		Importance:      r.Importance,
		Flagged:         r.Flagged,
	}, nil
}

// --- Handler Methods ---

// GetAllEntries returns the full matrix joined with category documents.
func (h *MasterHandler) GetAllEntries(c *gin.Context) {
	entries, err := h.masterService.GetAllEntries(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Server error")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// AddEntry inserts one matrix row.
func (h *MasterHandler) AddEntry(c *gin.Context) {
	var req AddMasterEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "All fields are required")
		return
	}

	entry, err := req.toEntry()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	created, err := h.masterService.AddEntry(c.Request.Context(), entry)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) || errors.Is(err, service.ErrInvalidImportance) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}
	c.JSON(http.StatusCreated, created)
}

// AddEntries bulk-inserts matrix rows.
func (h *MasterHandler) AddEntries(c *gin.Context) {
	var req []AddMasterEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("No data provided or data is not in array format: %v", err))
		return
	}

	entries := make([]domain.MasterEntry, len(req))
	for i, r := range req {
		entry, err := r.toEntry()
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid category ID format")
			return
		}
		entries[i] = entry
	}

	created, err := h.masterService.AddEntries(c.Request.Context(), entries)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) || errors.Is(err, service.ErrInvalidImportance) {
			abortWithError(c, http.StatusBadRequest, "All fields are required for each entry")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "Master entries added successfully", "data": created})
}

// UpdateSkill bulk-renames a skill string across the matrix.
func (h *MasterHandler) UpdateSkill(c *gin.Context) {
	var req UpdateMasterSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Old skill and new skill are required")
		return
	}

	affected, err := h.masterService.UpdateSkillAcrossMaster(c.Request.Context(), req.OldSkill, req.NewSkill)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to update skills in master data")
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Skill updated in all records.", "modifiedCount": affected})
}

// DeleteAll wipes the matrix.
func (h *MasterHandler) DeleteAll(c *gin.Context) {
	if err := h.masterService.DeleteAllEntries(c.Request.Context()); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to delete master data")
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "All master data deleted successfully."})
}

// GetByGenus returns the joined rows for one genus. Accepts either the plain
// genus value or the combined "<experience> - <genus>" display label.
func (h *MasterHandler) GetByGenus(c *gin.Context) {
	var req GetByGenusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Genus is required")
		return
	}

	entries, err := h.masterService.GetEntriesByGenus(c.Request.Context(), req.Genus)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoEntriesForGenus):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}
	c.JSON(http.StatusOK, entries)
}
