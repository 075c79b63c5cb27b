// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"recipebook/internal/recipes/adapters/http/auth"
	"recipebook/internal/recipes/adapters/http/middleware"
	"recipebook/internal/recipes/adapters/http/recipes"
	"recipebook/internal/recipes/adapters/http/users"
	"recipebook/internal/recipes/app"
	"recipebook/internal/recipes/ports/services"
)

// SetupRouter настраивает маршрутизацию HTTP сервера.
func SetupRouter(
	fiberApp *fiber.App,
	authUseCase *app.AuthUseCase,
	userUseCase *app.UserUseCase,
	recipeUseCase *app.RecipeUseCase,
	tokenService services.TokenService,
) {
	authHandler := auth.NewHandler(authUseCase)
	usersHandler := users.NewHandler(userUseCase, recipeUseCase)
	recipesHandler := recipes.NewHandler(recipeUseCase)

	// Middleware для всех запросов.
	fiberApp.Use(middleware.NewLoggerMiddleware())
	fiberApp.Use(middleware.NewRecoveryMiddleware())

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	api := fiberApp.Group("/api")

	// Auth routes (публичные, кроме /user).
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/user", usersHandler.Me, authMiddleware)

	// Каталог рецептов: чтение публичное, изменение требует авторизации.
	recipeRoutes := api.Group("/recipes")
	recipeRoutes.Get("/", recipesHandler.List)
	recipeRoutes.Get("/:id", recipesHandler.Get)
	recipeRoutes.Post("/", recipesHandler.Create, authMiddleware)
	recipeRoutes.Put("/:id", recipesHandler.Update, authMiddleware)
	recipeRoutes.Delete("/:id", recipesHandler.Delete, authMiddleware)
	recipeRoutes.Post("/:id/rate", recipesHandler.Rate, authMiddleware)
	recipeRoutes.Post("/:id/favorite", recipesHandler.AddFavorite, authMiddleware)
	recipeRoutes.Delete("/:id/favorite", recipesHandler.RemoveFavorite, authMiddleware)

	// Маршруты текущего пользователя (требуют авторизации).
	userRoutes := api.Group("/users")
	userRoutes.Use(authMiddleware)
	userRoutes.Get("/me", usersHandler.Me)
	userRoutes.Put("/profile", usersHandler.UpdateProfile)
	userRoutes.Put("/password", usersHandler.ChangePassword)
	userRoutes.Get("/recipes", usersHandler.MyRecipes)
	userRoutes.Get("/favorites", usersHandler.Favorites)

	// Обработчик для несуществующих маршрутов.
	fiberApp.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
