package app

import (
	"net/http"

	"github.com/ak/macrolog/internal/app/middleware"
	"github.com/ak/macrolog/internal/domain/services"
	"github.com/ak/macrolog/internal/infrastructure/config"
	"github.com/ak/macrolog/internal/infrastructure/database"
	"github.com/ak/macrolog/internal/infrastructure/repositories"
	"github.com/ak/macrolog/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Application holds all application dependencies and services
type Application struct {
	config  *config.Config
	logger  *logger.Logger
	mongodb *database.MongoDB
	repos   *repositories.Provider
	router  *gin.Engine

	userService       services.UserService
	ingredientService services.IngredientService
	recipeService     services.RecipeService
	inventoryService  services.InventoryService
	logService        services.LogService
	mealService       services.MealService
	nutritionService  services.NutritionService
	goalService       services.GoalService
	weightService     services.WeightService
}

// New creates a new Application instance
func New(cfg *config.Config, log *logger.Logger, mongodb *database.MongoDB) (*Application, error) {
	repos := repositories.NewProvider(mongodb)

	app := &Application{
		config:  cfg,
		logger:  log,
		mongodb: mongodb,
		repos:   repos,

		userService:       services.NewUserService(repos.User, log),
		ingredientService: services.NewIngredientService(repos.Ingredient, repos.User, log),
		recipeService:     services.NewRecipeService(repos.Recipe, repos.Ingredient, repos.User, log),
		inventoryService:  services.NewInventoryService(repos.User, repos.Ingredient, repos.Recipe),
		logService:        services.NewLogService(repos.User, repos.Ingredient, repos.Recipe, log),
		mealService:       services.NewMealService(repos.User, log),
		nutritionService:  services.NewNutritionService(repos.User, repos.Ingredient, repos.Recipe, log),
		weightService:     services.NewWeightService(repos.User, log),
	}
	app.goalService = services.NewGoalService(repos.User, app.nutritionService, log)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app.router = gin.New()

	app.router.Use(middleware.RecoveryMiddleware(log.Logger))
	app.router.Use(middleware.RequestIDMiddleware())
	app.router.Use(middleware.LoggerMiddleware(log.Logger))
	app.router.Use(app.corsMiddleware())

	app.setupRoutes()

	return app, nil
}

// Router returns the HTTP handler
func (a *Application) Router() http.Handler {
	return a.router
}

// setupRoutes configures all application routes
func (a *Application) setupRoutes() {
	// Health check endpoints
	a.router.GET("/health", a.healthCheck)
	a.router.GET("/ready", a.readinessCheck)

	jwtConfig := middleware.JWTConfig{
		Secret:   a.config.JWT.Secret,
		Issuer:   a.config.JWT.Issuer,
		TokenTTL: a.config.JWT.TokenTTL,
	}

	v1 := a.router.Group("/api/v1")
	v1.Use(middleware.JWTMiddleware(jwtConfig))
	v1.Use(a.ensureUser())
	{
		// Ingredient catalog
		ingredients := v1.Group("/ingredients")
		{
			ingredients.GET("", a.listIngredients)
			ingredients.POST("", a.createIngredient)
			ingredients.GET("/search", a.searchIngredients)
			ingredients.GET("/:id", a.getIngredient)
			ingredients.DELETE("/:id", a.deleteIngredient)
		}

		// Recipe catalog
		recipes := v1.Group("/recipes")
		{
			recipes.GET("", a.listRecipes)
			recipes.POST("", a.createRecipe)
			recipes.GET("/search", a.searchRecipes)
			recipes.GET("/:id", a.getRecipe)
			recipes.GET("/:id/ingredients", a.getRecipeIngredients)
			recipes.DELETE("/:id", a.deleteRecipe)
		}

		// Inventory ledger
		inventory := v1.Group("/inventory")
		{
			inventory.GET("", a.getInventory)
			inventory.POST("/ingredients", a.addIngredientToInventory)
			inventory.POST("/recipes", a.addRecipeToInventory)
		}

		// Food logging
		v1.POST("/log", a.logFood)
		v1.DELETE("/log/:date/:meal/:foodId", a.deleteLoggedFood)

		// History ledgers
		history := v1.Group("/history")
		{
			history.GET("/meals/:date", a.getDailyMeals)
			history.GET("/nutrition/:date", a.getDailyNutrition)
			history.GET("/nutrition/:date/summary", a.getDailySummary)
		}

		// Goals
		v1.GET("/goals", a.getGoals)
		v1.PUT("/goals", a.updateGoals)

		// Weight history
		v1.GET("/weight", a.getWeightHistory)
		v1.PUT("/weight/:date", a.setWeight)
		v1.DELETE("/weight/:date", a.deleteWeight)
	}
}

// ensureUser bootstraps the per-user document on first authenticated contact.
func (a *Application) ensureUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.GetUID(c)
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "no user in token",
			})
			return
		}

		if _, err := a.userService.EnsureUser(c.Request.Context(), uid); err != nil {
			respondError(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}

func (a *Application) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
