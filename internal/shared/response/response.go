package response

import (
	"github.com/gin-gonic/gin"
)

// The JSON contract mirrors the public API: success bodies are the
// resource itself, failures are {"error": message}.

// OK writes payload with a 200.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(200, payload)
}

// Created writes payload with a 201.
func Created(c *gin.Context, payload interface{}) {
	c.JSON(201, payload)
}

// Error writes {"error": message} with the given status.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 401, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 403, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 404, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 409, message)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, 500, message)
}
