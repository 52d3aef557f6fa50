package routes

import (
	"log"
	"net/http"

	"trivia/handlers"
	"trivia/middleware"
	"trivia/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the feed is read-only and public
	},
}

// SetupRoutes installs middleware, the /api surface, the question feed and
// health check on router. A nil authService leaves mutating routes public.
func SetupRoutes(
	router *gin.Engine,
	categoryHandler *handlers.CategoryHandler,
	questionHandler *handlers.QuestionHandler,
	quizHandler *handlers.QuizHandler,
	authHandler *handlers.AuthHandler,
	hub *services.Hub,
	authService *services.AuthService,
) {
	router.HandleMethodNotAllowed = true
	router.NoRoute(handlers.NotFound)
	router.NoMethod(handlers.MethodNotAllowed)

	router.Use(gin.CustomRecovery(handlers.Recovery))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())

	requireAdmin := middleware.AuthMiddleware(authService)

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.GET("/:id/questions", categoryHandler.GetCategoryQuestions)
		}

		questions := api.Group("/questions")
		{
			questions.GET("", questionHandler.GetQuestions)
			questions.GET("/:id", questionHandler.GetQuestion)
			// Search shares the create route and stays public.
			questions.POST("", middleware.Unless(middleware.IsSearchRequest, requireAdmin), questionHandler.PostQuestions)
			questions.PATCH("/:id", requireAdmin, questionHandler.UpdateQuestion)
			questions.DELETE("/:id", requireAdmin, questionHandler.DeleteQuestion)
		}

		api.POST("/quizzes", quizHandler.PlayQuiz)
	}

	// WebSocket feed of question catalog changes
	router.GET("/ws/questions", func(c *gin.Context) {
		if hub == nil {
			handlers.NotFound(c)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			return
		}

		hub.RegisterClient(c.Request.Context(), conn)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
