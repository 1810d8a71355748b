package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/platebook/recipe-api/internal/api/handler"
	"github.com/platebook/recipe-api/internal/api/middleware"
	"github.com/platebook/recipe-api/internal/core/domain"
	"github.com/platebook/recipe-api/internal/core/service"
	mongodb "github.com/platebook/recipe-api/internal/infrastructure/db/mongo"
	redisdb "github.com/platebook/recipe-api/internal/infrastructure/db/redis"
	"github.com/platebook/recipe-api/internal/infrastructure/queue"
)

// Deps carries the external collaborators the router needs.
type Deps struct {
	Mongo      *mongo.Database
	Redis      *redis.Client
	Codec      *service.TokenCodec
	Dispatcher *queue.AuditDispatcher
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("recipe_api"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(deps.Mongo)
	authService := service.NewAuthService(authRepo, deps.Codec, deps.Logger)
	authHandler := handler.NewAuthHandler(authService)

	recipeRepo := mongodb.NewRecipeRepository(deps.Mongo)
	recipeCache := redisdb.NewRecipeCache(deps.Redis)
	recipeService := service.NewRecipeService(recipeRepo, recipeCache, deps.Dispatcher, deps.Logger)
	recipeHandler := handler.NewRecipeHandler(recipeService)

	authenticate := middleware.Auth(deps.Codec, authRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- API routes ---
	g := e.Group("/api")

	g.POST("/auth/register", authHandler.Register)
	g.POST("/auth/login", authHandler.Login)

	g.GET("/recipes", recipeHandler.List)
	g.GET("/recipes/:id", recipeHandler.Get)
	g.POST("/recipes", recipeHandler.Create, authenticate, adminOnly)
	g.PUT("/recipes/:id", recipeHandler.Update, authenticate, adminOnly)
	g.DELETE("/recipes/:id", recipeHandler.Delete, authenticate, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
