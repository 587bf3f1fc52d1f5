package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"leave-manager/internal/services"
)

// Not-found messages returned with 404.
const (
	msgUserNotFound  = "User not found"
	msgLeaveNotFound = "Leave application not found"
)

// Pinger reports whether the storage is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// AppHandler groups the HTTP handlers of the user and leave resources
type AppHandler struct {
	userService  services.UserServiceInterface
	leaveService services.LeaveServiceInterface
	db           Pinger
}

// NewAppHandler creates a new AppHandler
func NewAppHandler(us services.UserServiceInterface, ls services.LeaveServiceInterface, db Pinger) *AppHandler {
	return &AppHandler{
		userService:  us,
		leaveService: ls,
		db:           db,
	}
}

// parseID reads the :id path parameter. Anything that is not a positive
// integer cannot name a row, so callers answer it with 404.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// Health pings the database.
func (h *AppHandler) Health(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Database unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
