package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leave-manager/internal/models"
)

// ListUsers handles GET /users
func (h *AppHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, err, msgUserNotFound)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /user/:id
func (h *AppHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, msgUserNotFound)
		return
	}
	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, msgUserNotFound)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /adduser
func (h *AppHandler) CreateUser(c *gin.Context) {
	var input models.UserInput
	if !bindInput(c, &input) {
		return
	}
	user, err := h.userService.CreateUser(c.Request.Context(), input)
	if err != nil {
		writeError(c, err, msgUserNotFound)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser handles PUT /user/:id. Every field is replaced.
func (h *AppHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, msgUserNotFound)
		return
	}
	var input models.UserInput
	if !bindInput(c, &input) {
		return
	}
	user, err := h.userService.UpdateUser(c.Request.Context(), id, input)
	if err != nil {
		writeError(c, err, msgUserNotFound)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /user/:id and answers with the deleted user.
func (h *AppHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, msgUserNotFound)
		return
	}
	user, err := h.userService.DeleteUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, msgUserNotFound)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUserLeaves handles GET /user/:id/leaves
func (h *AppHandler) GetUserLeaves(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c, msgUserNotFound)
		return
	}
	leaves, err := h.userService.ListUserLeaves(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, msgUserNotFound)
		return
	}
	c.JSON(http.StatusOK, leaves)
}
