package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventra-api/models"
	"github.com/eventra-api/services"
)

// principalFrom rebuilds the acting principal from the context values set by
// the auth middleware
func principalFrom(c *gin.Context) services.Principal {
	userIDValue, _ := c.Get("userId")
	userID, _ := userIDValue.(string)
	roleValue, _ := c.Get("role")
	role, _ := roleValue.(string)
	return services.Principal{ID: userID, Role: models.Role(role)}
}

// respondError maps domain errors to HTTP status codes. Anything outside
// the domain taxonomy is a dependency failure and surfaces as a 500.
func respondError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}

	c.JSON(status, gin.H{
		"status":  "error",
		"message": message,
		"error":   err.Error(),
	})
}

// respondBindError rejects malformed request payloads before they reach the
// repository layer
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}
