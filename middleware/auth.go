package middleware

import (
	"net/http"
	"strings"

	"trivia/handlers"
	"trivia/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const UserKey = "user"

// AuthMiddleware requires a valid admin bearer token. A nil auth service
// lets every request through.
func AuthMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth == nil {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			handlers.RespondError(c, http.StatusUnauthorized)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			handlers.RespondError(c, http.StatusUnauthorized)
			return
		}

		c.Set(UserKey, claims.Username)
		c.Next()
	}
}

// Unless skips guard for requests matching skip.
func Unless(skip func(c *gin.Context) bool, guard gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skip(c) {
			c.Next()
			return
		}
		guard(c)
	}
}

// IsSearchRequest reports whether a POST /questions body carries a
// searchTerm. The body is cached on the context so handlers can bind it again.
func IsSearchRequest(c *gin.Context) bool {
	var probe services.SearchQuestionsRequest
	if err := c.ShouldBindBodyWith(&probe, binding.JSON); err != nil {
		return false
	}
	return probe.SearchTerm != nil
}
