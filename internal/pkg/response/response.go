package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every endpoint, success or failure, answers with one of the two shapes
// below so clients can branch on "success" alone.

// errorBody is the inner object of an error reply
type errorBody struct {
	Status  int    `json:"status" example:"404"`
	Message string `json:"message" example:"Couldn't find any user data"`
}

// APIError represents the error envelope
type APIError struct {
	Success bool      `json:"success" example:"false"`
	Error   errorBody `json:"error"`
}

// Success writes {"success":true,"message":...} merged with the payload keys
// at the given status. Call it at most once per request.
func Success(c *gin.Context, statusCode int, message string, payload gin.H) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Error writes {"success":false,"error":{"status":...,"message":...}}.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIError{
		Success: false,
		Error:   errorBody{Status: statusCode, Message: message},
	})
}

// OK sends a 200 success response
func OK(c *gin.Context, message string, payload gin.H) {
	Success(c, http.StatusOK, message, payload)
}

// Created sends a 201 success response
func Created(c *gin.Context, message string, payload gin.H) {
	Success(c, http.StatusCreated, message, payload)
}

// BadRequest sends a 400 error
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 error
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 error
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound sends a 404 error
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict sends a 409 error
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// TooManyRequests sends a 429 error
func TooManyRequests(c *gin.Context, message string) {
	Error(c, http.StatusTooManyRequests, message)
}

// InternalServerError sends a 500 error with a safe message
func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// BindJSONError handles JSON decode errors in request body
func BindJSONError(c *gin.Context, err error) {
	BadRequest(c, "Invalid request format")
}
