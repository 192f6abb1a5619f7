package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the data payload of a successful reply.
type Response map[string]interface{}

// business error codes
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeNotFound     = 40401
	CodeServerErr    = 50001
)

// Success writes the uniform success envelope with HTTP 200.
func Success(c *gin.Context, data Response) {
	SuccessStatus(c, http.StatusOK, data)
}

// SuccessStatus writes the uniform success envelope with an explicit status,
// e.g. 201 for resource creation.
func SuccessStatus(c *gin.Context, status int, data Response) {
	c.JSON(status, gin.H{
		"success": true,
		"code":    CodeOK,
		"data":    data,
	})
}

// Error writes the uniform failure envelope.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"success": false,
		"code":    code,
		"message": msg,
	})
}
