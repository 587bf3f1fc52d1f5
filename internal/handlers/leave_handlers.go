package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"leave-manager/internal/export"
	"leave-manager/internal/models"
)

// leaveFilter reads the optional user_id and status query parameters.
func leaveFilter(c *gin.Context) (models.LeaveFilter, bool) {
	filter := models.LeaveFilter{Status: c.Query("status")}
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"message": gin.H{"user_id": msgPositiveInt}})
			return filter, false
		}
		filter.UserID = id
	}
	return filter, true
}

// ListLeaves handles GET /leaves
func (h *AppHandler) ListLeaves(c *gin.Context) {
	filter, ok := leaveFilter(c)
	if !ok {
		return
	}
	leaves, err := h.leaveService.ListLeaves(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err, msgLeaveNotFound)
		return
	}
	c.JSON(http.StatusOK, leaves)
}

// ExportLeaves handles GET /leaves/export and streams an XLSX workbook.
func (h *AppHandler) ExportLeaves(c *gin.Context) {
	filter, ok := leaveFilter(c)
	if !ok {
		return
	}
	leaves, err := h.leaveService.ListLeaves(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err, msgLeaveNotFound)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="leave_applications.xlsx"`)
	c.Header("Content-Type", export.ContentType)
	c.Status(http.StatusOK)
	if err := export.WriteLeaves(c.Writer, leaves); err != nil {
		// headers are already sent
		log.Printf("[Handler ExportLeaves] %v", err)
		_ = c.Error(err)
	}
}

// GetLeave handles GET /leave/:id
func (h *AppHandler) GetLeave(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, msgLeaveNotFound)
		return
	}
	leave, err := h.leaveService.GetLeave(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, msgLeaveNotFound)
		return
	}
	c.JSON(http.StatusOK, leave)
}

// CreateLeave handles POST /addleave
func (h *AppHandler) CreateLeave(c *gin.Context) {
	var input models.LeaveInput
	if !bindInput(c, &input) {
		return
	}
	leave, err := h.leaveService.CreateLeave(c.Request.Context(), input)
	if err != nil {
		writeError(c, err, msgLeaveNotFound)
		return
	}
	c.JSON(http.StatusOK, leave)
}

// UpdateLeave handles PUT /leave/:id. Every field is replaced.
func (h *AppHandler) UpdateLeave(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, msgLeaveNotFound)
		return
	}
	var input models.LeaveInput
	if !bindInput(c, &input) {
		return
	}
	leave, err := h.leaveService.UpdateLeave(c.Request.Context(), id, input)
	if err != nil {
		writeError(c, err, msgLeaveNotFound)
		return
	}
	c.JSON(http.StatusOK, leave)
}

// DeleteLeave handles DELETE /leave/:id and answers with the deleted application.
func (h *AppHandler) DeleteLeave(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, msgLeaveNotFound)
		return
	}
	leave, err := h.leaveService.DeleteLeave(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, msgLeaveNotFound)
		return
	}
	c.JSON(http.StatusOK, leave)
}
