package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"trivia/handlers"
	"trivia/routes"
	"trivia/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("port", "", "Port to listen on (overrides PORT)")
	serveCmd.Flags().Bool("seed", false, "Load the seed catalog before serving")
}

func runServe(cmd *cobra.Command) error {
	cfg := loadConfig(cmd)
	if cmd.Flags().Lookup("port") != nil {
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if cmd.Flags().Lookup("seed") != nil {
		if doSeed, _ := cmd.Flags().GetBool("seed"); doSeed {
			if err := applySeed(cmd, a, cfg.SeedFile); err != nil {
				return err
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize services
	var authService *services.AuthService
	if cfg.AuthEnabled() {
		authService, err = services.NewAuthService(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret)
		if err != nil {
			return err
		}
		log.Printf("Admin authentication enabled for user %q", cfg.AdminUsername)
	}
	quizService := services.NewQuizService(services.StoreSource{Questions: a.questions, Categories: a.categories})

	// Initialize WebSocket hub
	hub := services.NewHub(a.questions)
	a.questions.AttachFeed(hub)
	go hub.Run(ctx)

	// Initialize handlers
	categoryHandler := handlers.NewCategoryHandler(a.categories, a.questions)
	questionHandler := handlers.NewQuestionHandler(a.questions, a.categories)
	quizHandler := handlers.NewQuizHandler(quizService)
	authHandler := handlers.NewAuthHandler(authService)

	router := gin.New()
	router.Use(gin.Logger())
	routes.SetupRoutes(router, categoryHandler, questionHandler, quizHandler, authHandler, hub, authService)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
