package organizationRoutes

import (
	"github.com/gofiber/fiber/v2"

	courseControllers "lms/controllers/course"
	organizationControllers "lms/controllers/organization"
	"lms/middleware"
	"lms/permissions"
	adminValidators "lms/validators/admin"
	batchValidators "lms/validators/batch"
	courseValidators "lms/validators/course"
)

func SetupOrganizationRoutes(app *fiber.App) {
	orgGroup := app.Group("/organization", middleware.JWTMiddleware)

	// Managed users and courses, scoped to the calling organization
	orgGroup.Post("/user", middleware.RequireOperation(permissions.OpCreateUser), adminValidators.CreateUser(), organizationControllers.CreateUser)
	orgGroup.Post("/course", middleware.RequireOperation(permissions.OpCreateCourse), courseValidators.CreateCourse(), courseControllers.CreateCourse)

	// Batch lifecycle; ownership is checked against the loaded batch
	orgGroup.Post("/batch", middleware.RequireActor, batchValidators.CreateBatch(), organizationControllers.CreateBatch)
	orgGroup.Get("/batches", middleware.RequireActor, organizationControllers.BatchList)
	orgGroup.Post("/batch/:id/user", middleware.RequireActor, batchValidators.BatchID(), batchValidators.BatchUser(), organizationControllers.AddUserToBatch)
	orgGroup.Delete("/batch/:id/user", middleware.RequireActor, batchValidators.BatchID(), batchValidators.BatchUsername(), organizationControllers.RemoveUserFromBatch)
	orgGroup.Post("/batch/:id/course", middleware.RequireActor, batchValidators.BatchID(), batchValidators.BatchCourse(), organizationControllers.AssignCourseToBatch)
	orgGroup.Delete("/batch/:id/course", middleware.RequireActor, batchValidators.BatchID(), batchValidators.BatchCourseTitle(), organizationControllers.RemoveCourseFromBatch)
	orgGroup.Get("/batch/:id/courses", middleware.RequireActor, batchValidators.BatchID(), organizationControllers.BatchCourseList)
	orgGroup.Get("/batch/:id/users", middleware.RequireActor, batchValidators.BatchID(), organizationControllers.BatchUserList)

	// Gated on the organization role, deliberately not scoped further
	orgGroup.Get("/batch-assignments", middleware.RequireOperation(permissions.OpListBatchAssignments), organizationControllers.AllBatchAssignments)
}
