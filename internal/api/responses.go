package api

import "github.com/gin-gonic/gin"

type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"something went wrong"`
}

type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Fail writes the standard failure body and aborts the chain.
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Message: message})
}

func OK(c *gin.Context, status int, message string) {
	c.JSON(status, MessageResponse{Success: true, Message: message})
}
