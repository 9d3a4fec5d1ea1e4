package api

import (
	"errors"
	"fmt"
	"net/http"

	"skillmatrix/training-app/internal/domain"
	"skillmatrix/training-app/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- DTOs ---

type RequestImageUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmImageUploadRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// --- Handler Methods ---

// GetAllUsers lists every user; any authenticated caller may read the list
// (the navbar needs the caller's own genus).
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, mapUsersToResponse(users))
}

// GetAllTrainees lists users with the trainee role. Admin only.
func (h *UserHandler) GetAllTrainees(c *gin.Context) {
	trainees, err := h.userService.GetAllTrainees(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch trainees")
		return
	}
	c.JSON(http.StatusOK, mapUsersToResponse(trainees))
}

// Me returns the caller's own record, with a presigned profile image URL
// when one exists.
func (h *UserHandler) Me(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch user")
		}
		return
	}

	resp := MapUserToResponse(user)
	if url, err := h.userService.ProfileImageURL(c.Request.Context(), user); err == nil {
		resp.ProfileImageURL = url
	}
	c.JSON(http.StatusOK, resp)
}

// RequestImageUpload issues a presigned PUT URL for the caller's profile image.
func (h *UserHandler) RequestImageUpload(c *gin.Context) {
	var req RequestImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	info, err := h.userService.RequestProfileImageUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidContentType) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to prepare image upload")
		}
		return
	}

	c.JSON(http.StatusOK, info)
}

// ConfirmImageUpload records the uploaded object key on the caller's record.
func (h *UserHandler) ConfirmImageUpload(c *gin.Context) {
	var req ConfirmImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	err = h.userService.ConfirmProfileImageUpload(c.Request.Context(), userID, req.ObjectKey)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, "Invalid object key")
		} else if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to confirm image upload")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Image uploaded successfully"})
}

func mapUsersToResponse(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = MapUserToResponse(&users[i])
	}
	return responses
}
