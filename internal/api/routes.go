package api

import (
	"chronicrelief/server/internal/domain"
	"chronicrelief/server/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	faqService service.FAQService,
	userService service.UserService,
	seedService service.SeedService,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	faqHandler := NewFAQHandler(faqService)
	userHandler := NewUserHandler(userService)
	seedHandler := NewSeedHandler(seedService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Lookup and FAQ are open: the SPA calls them before the user has
		// an account.
		apiV1.POST("/exercise", exerciseHandler.Lookup)
		apiV1.POST("/faq", faqHandler.Ask)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Per-user data ---
		meGroup := protected.Group("/me")
		{
			meGroup.GET("", userHandler.GetProfile)
			meGroup.PUT("/area", userHandler.SetSelectedArea)

			meGroup.PUT("/routines/:area", userHandler.SaveRoutine)
			meGroup.GET("/routines/:area", userHandler.GetRoutine)

			meGroup.PUT("/progress/:area", userHandler.SaveProgress)
			meGroup.GET("/progress/:area", userHandler.GetProgress)

			meGroup.POST("/history", userHandler.CompleteRoutine)
			meGroup.GET("/history", userHandler.GetHistory)

			meGroup.POST("/favorites/toggle", userHandler.ToggleFavorite)
			meGroup.DELETE("/favorites/:exerciseId", userHandler.RemoveFavorite)
			meGroup.GET("/favorites", userHandler.ListFavorites)

			meGroup.POST("/reset", userHandler.ResetAppData)
		}

		// --- Admin seeding ---
		adminGroup := protected.Group("/admin")
		adminGroup.Use(RoleMiddleware(domain.RoleAdmin))
		{
			adminGroup.POST("/seed/glossary", seedHandler.SeedGlossary)
			adminGroup.POST("/seed/exercisedb", seedHandler.SeedFromCatalog)
		}
	}
}
