package organizationController

import (
	"github.com/gofiber/fiber/v2"

	superAdminController "lms/controllers/superAdmin"
)

// CreateUser provisions a user under the calling organization. The new
// user's role is forced to student no matter what the request carries.
func CreateUser(c *fiber.Ctx) error {
	return superAdminController.CreateManagedUser(c)
}
