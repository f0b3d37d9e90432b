// Package router assembles the gin engine.
package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	mealhandler "diet_backend/internal/feature/meals/transport/handler"
	userhandler "diet_backend/internal/feature/users/transport/handler"
	healthhandler "diet_backend/internal/platform/http/handler"
	"diet_backend/internal/platform/http/middleware"
	"diet_backend/internal/platform/ratelimit"
	"diet_backend/internal/platform/session"
)

// Deps are the handlers and middleware collaborators the router mounts.
type Deps struct {
	Users  *userhandler.UserHandler
	Meals  *mealhandler.MealHandler
	Health *healthhandler.HealthHandler

	// Sessions resolves the sessionId cookie for /meals routes.
	Sessions session.UserFinder

	// SignupLimiter throttles POST /users. Nil disables throttling.
	SignupLimiter *ratelimit.RateLimiter

	// AllowedOrigins enables CORS with credentials for these origins.
	AllowedOrigins []string

	Logger *slog.Logger
}

// NewRouter builds the engine with every route registered.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(d.Logger))

	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// No authentication
	// connectivity check
	r.GET("/healthz", d.Health.Health)
	r.HEAD("/healthz", d.Health.Health)
	r.OPTIONS("/healthz", d.Health.Health)

	users := r.Group("/users")
	{
		users.GET("", d.Users.List)
		users.GET("/:id", d.Users.Get)
		if d.SignupLimiter != nil {
			users.POST("", d.SignupLimiter.Middleware(), d.Users.Create)
		} else {
			users.POST("", d.Users.Create)
		}
	}

	// Session required
	meals := r.Group("/meals")
	meals.Use(session.Required(d.Sessions))
	{
		meals.GET("", d.Meals.List)
		meals.GET("/summary", d.Meals.Summary)
		meals.GET("/:id", d.Meals.Get)
		meals.POST("", d.Meals.Create)
		meals.PATCH("/:id", d.Meals.Update)
		meals.DELETE("/:id", d.Meals.Delete)
	}

	return r
}
