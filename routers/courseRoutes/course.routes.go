package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/permissions"
	validators "lms/validators/course"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog browsing
	courseGroup.Get("/list", middleware.JWTMiddleware, middleware.RequireOperation(permissions.OpBrowseCatalog), controllers.CourseList)

	// Caller's own enrollments (registered before /:id)
	courseGroup.Get("/my/courses", middleware.JWTMiddleware, middleware.RequireOperation(permissions.OpReadSelf), controllers.MyCourses)

	// Course details
	courseGroup.Get("/:id", middleware.JWTMiddleware, middleware.RequireOperation(permissions.OpBrowseCatalog), validators.CourseDetail(), controllers.CourseDetail)
}
