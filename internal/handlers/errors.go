package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"leave-manager/internal/repositories"
	"leave-manager/internal/services"
)

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"message": message})
}

// writeError maps service and repository errors to a status and a
// {"message": ...} body. Field-level problems carry a field → text map.
func writeError(c *gin.Context, err error, notFoundMsg string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Fields})
	case errors.Is(err, repositories.ErrNotFound):
		notFound(c, notFoundMsg)
	case errors.Is(err, repositories.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"message": gin.H{"role": err.Error()}})
	case errors.Is(err, repositories.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": gin.H{"status": err.Error()}})
	case errors.Is(err, repositories.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
	case errors.Is(err, repositories.ErrUnknownUser):
		c.JSON(http.StatusConflict, gin.H{"message": "User not found for user_id"})
	case errors.Is(err, repositories.ErrUserHasLeaves):
		c.JSON(http.StatusConflict, gin.H{"message": "User has leave applications"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
