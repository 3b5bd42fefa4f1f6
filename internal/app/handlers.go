package app

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ak/macrolog/internal/domain/models"
	"github.com/ak/macrolog/internal/domain/repositories"
	apperrors "github.com/ak/macrolog/internal/pkg/errors"
	"github.com/gin-gonic/gin"
)

// APIResponse is the standard API response format
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func successResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func createdResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func errorResponse(c *gin.Context, status int, code, message string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// respondError maps service and reconciler errors to HTTP responses.
// Reconciler messages reach the client verbatim.
func respondError(c *gin.Context, err error) {
	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) {
		errorResponse(c, apiErr.HTTPStatus, string(apiErr.Code), apiErr.Message)
		return
	}

	var missing *models.MissingIngredientError
	if errors.As(err, &missing) {
		errorResponse(c, http.StatusConflict, string(apperrors.ErrInventoryMissing), missing.Error())
		return
	}

	var insufficient *models.InsufficientAmountError
	if errors.As(err, &insufficient) {
		errorResponse(c, http.StatusConflict, string(apperrors.ErrInventoryInsufficient), insufficient.Error())
		return
	}

	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		errorResponse(c, http.StatusNotFound, string(apperrors.ErrNotFound), "user not found")
	case errors.Is(err, repositories.ErrVersionConflict):
		errorResponse(c, http.StatusConflict, string(apperrors.ErrVersionConflict), "resource was modified concurrently")
	default:
		errorResponse(c, http.StatusInternalServerError, string(apperrors.ErrInternal), "An internal error occurred")
	}
}

func getSearchQuery(c *gin.Context) (string, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	if limit < 1 || limit > 100 {
		limit = 25
	}
	return c.Query("q"), limit
}

// Health endpoints

func (a *Application) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *Application) readinessCheck(c *gin.Context) {
	if err := a.mongodb.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "not ready",
			"reason":    "database unavailable",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
