package superAdminRoutes

import (
	"github.com/gofiber/fiber/v2"

	courseControllers "lms/controllers/course"
	superAdminControllers "lms/controllers/superAdmin"
	"lms/middleware"
	"lms/permissions"
	adminValidators "lms/validators/admin"
	courseValidators "lms/validators/course"
)

func SetupSuperAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware)

	// User management
	adminGroup.Get("/users", middleware.RequireOperation(permissions.OpListUsers), superAdminControllers.UserList)
	adminGroup.Post("/user", middleware.RequireOperation(permissions.OpCreateUser), adminValidators.CreateUser(), superAdminControllers.CreateManagedUser)
	adminGroup.Delete("/user/:id", middleware.RequireOperation(permissions.OpDeleteUser), adminValidators.DeleteUser(), superAdminControllers.DeleteUser)
	adminGroup.Post("/organization", middleware.RequireOperation(permissions.OpCreateOrganization), adminValidators.CreateOrganization(), superAdminControllers.CreateOrganization)

	// Course management
	adminGroup.Post("/course", middleware.RequireOperation(permissions.OpCreateCourse), courseValidators.CreateCourse(), courseControllers.CreateCourse)
	adminGroup.Get("/courses", middleware.RequireActor, courseControllers.AdminCourseList)

	// Enrollment assignment
	adminGroup.Post("/assign-course", middleware.RequireOperation(permissions.OpAssignEnrollment), courseValidators.AssignCourse(), courseControllers.AssignCourse)
	adminGroup.Get("/assignments", middleware.RequireActor, courseControllers.AssignmentList)
}
