package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the user and leave resources.
func RegisterRoutes(r gin.IRouter, h *AppHandler) {
	r.GET("/health", h.Health)

	r.GET("/users", h.ListUsers)
	r.POST("/adduser", h.CreateUser)
	user := r.Group("/user/:id")
	{
		user.GET("", h.GetUser)
		user.PUT("", h.UpdateUser)
		user.DELETE("", h.DeleteUser)
		user.GET("/leaves", h.GetUserLeaves)
	}

	r.GET("/leaves", h.ListLeaves)
	r.GET("/leaves/export", h.ExportLeaves)
	r.POST("/addleave", h.CreateLeave)
	leave := r.Group("/leave/:id")
	{
		leave.GET("", h.GetLeave)
		leave.PUT("", h.UpdateLeave)
		leave.DELETE("", h.DeleteLeave)
	}
}
