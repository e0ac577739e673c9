package routes

import (
	"github.com/contesthq/contest-backend/internal/config"
	"github.com/contesthq/contest-backend/internal/handlers"
	"github.com/contesthq/contest-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies bundles the handlers the router wires up
type HandlerDependencies struct {
	Play    *handlers.PlayHandler
	Stats   *handlers.StatsHandler
	Contest *handlers.ContestHandler
	Auth    *handlers.AuthHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Player-facing routes
	router.GET("/play", deps.Play.Play)
	router.GET("/stats", deps.Stats.Stats)

	// Public admin routes
	public := router.Group("/api/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.Auth.Login)
		}
	}

	// Protected admin routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.POST("/auth/register", deps.Auth.Register)

		contests := protected.Group("/contests")
		{
			contests.GET("", deps.Contest.ListContests)
			contests.POST("", deps.Contest.CreateContest)
			contests.GET("/:code", deps.Contest.GetContest)
			contests.PUT("/:code", deps.Contest.UpdateContest)
			contests.DELETE("/:code", deps.Contest.DeleteContest)
			contests.GET("/:code/prizes", deps.Contest.ListPrizes)
			contests.POST("/:code/prizes", deps.Contest.AddPrize)
		}

		prizes := protected.Group("/prizes")
		{
			prizes.PUT("/:id", deps.Contest.UpdatePrize)
			prizes.DELETE("/:id", deps.Contest.DeletePrize)
		}
	}

	return router
}
