package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snapgram/photo-service/internal/domain"
)

// Success writes a 200 response with the standard envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Created writes a 201 response with the standard envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// BadRequest writes a 400 response for malformed request bodies.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": []string{message}})
}

// Error maps a domain error to its HTTP status. Non-domain errors are
// surfaced as 500 without leaking their message.
func Error(c *gin.Context, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case domain.KindNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	case domain.KindForbidden:
		writeError(c, http.StatusForbidden, err.Error())
	case domain.KindConflict:
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "errors": []string{message}})
}
