package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authControllers "lms/controllers/auth"
	"lms/middleware"
	authValidators "lms/validators/auth"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/token/refresh", authControllers.RefreshToken)
	authGroup.Post("/reset-password", authValidators.ResetPassword(), authControllers.ResetPassword)
	authGroup.Post("/logout", middleware.JWTMiddleware, authControllers.Logout)
}
