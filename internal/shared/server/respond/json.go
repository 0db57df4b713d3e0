package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Result is the success envelope: {"success": true, "message": "..."}.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Success writes a 200 success envelope with an optional message.
func Success(c *gin.Context, message string) {
	OK(c, Result{Success: true, Message: message})
}
