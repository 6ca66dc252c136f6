package handler

import (
	"github.com/gin-gonic/gin"
)

// envelope is the single response shape every JSON endpoint uses.
// Earlier revisions of this API drifted between numeric and boolean
// "status" fields; statusCode + success is the standardized form.
type envelope struct {
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Details    any    `json:"details"`
}

func respond(c *gin.Context, statusCode int, message string, details any) {
	c.JSON(statusCode, envelope{
		StatusCode: statusCode,
		Success:    statusCode < 400,
		Message:    message,
		Details:    details,
	})
}
