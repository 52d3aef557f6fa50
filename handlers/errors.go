package handlers

import (
	"errors"
	"log"
	"net/http"

	"trivia/services"

	"github.com/gin-gonic/gin"
)

var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
}

// RespondError aborts the request with the API's error envelope.
func RespondError(c *gin.Context, status int) {
	message, ok := errorMessages[status]
	if !ok {
		message = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   status,
		"message": message,
	})
}

// respondServiceError maps service sentinels to statuses; anything unknown is
// logged and reported as 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidPage),
		errors.Is(err, services.ErrTooManyPrevious),
		errors.Is(err, services.ErrBlankText):
		RespondError(c, http.StatusBadRequest)
	case errors.Is(err, services.ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized)
	case errors.Is(err, services.ErrQuestionNotFound),
		errors.Is(err, services.ErrPageNotFound):
		RespondError(c, http.StatusNotFound)
	case errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrInvalidCategory):
		RespondError(c, http.StatusUnprocessableEntity)
	default:
		log.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		RespondError(c, http.StatusInternalServerError)
	}
}

func NotFound(c *gin.Context) {
	RespondError(c, http.StatusNotFound)
}

func MethodNotAllowed(c *gin.Context) {
	RespondError(c, http.StatusMethodNotAllowed)
}

// Recovery turns a panic into a 500 envelope.
func Recovery(c *gin.Context, recovered interface{}) {
	log.Printf("Recovered from panic on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
	RespondError(c, http.StatusInternalServerError)
}
