package api

import (
	"net/http"
	"wellness-admin/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	tagService service.TagService,
	categoryService service.CategoryService,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	tagHandler := NewTagHandler(tagService)
	categoryHandler := NewCategoryHandler(categoryService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.Use(RequestIDMiddleware())

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
	}

	// Everything past this point requires a signed-in admin; failures answer
	// 401 with a /signin redirect hint.
	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr})
		})

		// --- Exercise Routes ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)

			// Usage counters, one-to-one with the exercise
			exerciseGroup.GET("/:id/stats", exerciseHandler.GetStats)
			exerciseGroup.PUT("/:id/stats", exerciseHandler.UpdateStats)
		}

		// --- Tag Routes ---
		tagGroup := protected.Group("/tags")
		{
			tagGroup.POST("", tagHandler.CreateTag)
			tagGroup.GET("", tagHandler.ListTags)
			tagGroup.PUT("/:id", tagHandler.RenameTag)
			tagGroup.DELETE("/:id", tagHandler.DeleteTag)
		}

		// --- Category Routes ---
		categoryGroup := protected.Group("/categories")
		{
			categoryGroup.POST("", categoryHandler.CreateCategory)
			categoryGroup.GET("", categoryHandler.ListCategories)
			categoryGroup.PUT("/:id", categoryHandler.RelabelCategory)
			categoryGroup.DELETE("/:id", categoryHandler.DeleteCategory)
		}
	}
}
