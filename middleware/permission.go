package middleware

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/permissions"
)

// RequireOperation loads the caller's actor and evaluates the gate before
// the handler runs. Handlers needing ownership checks re-evaluate with the
// concrete resource using the actor stored in Locals.
func RequireOperation(op permissions.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		actor, err := permissions.LoadActor(database.Database.Db, userID)
		if err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}
		c.Locals("actor", actor)

		if d := permissions.Authorize(actor, op, permissions.Resource{}); !d.Allowed {
			return PermissionDenied(c, d)
		}
		return c.Next()
	}
}

// RequireActor loads the caller's actor into Locals without deciding
// anything. Handlers that need the concrete resource for an ownership
// check evaluate the gate themselves.
func RequireActor(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	actor, err := permissions.LoadActor(database.Database.Db, userID)
	if err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	c.Locals("actor", actor)
	return c.Next()
}

// PermissionDenied maps a gate deny onto the wire. A missing profile gets
// its own message so it is never mistaken for a role problem.
func PermissionDenied(c *fiber.Ctx, d permissions.Decision) error {
	if d.Reason == permissions.ReasonProfileMissing {
		return JsonResponse(c, fiber.StatusForbidden, false, "Profile not found!", nil)
	}
	return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
}

// ActorFromLocals fetches the actor stashed by RequireOperation.
func ActorFromLocals(c *fiber.Ctx) (permissions.Actor, bool) {
	actor, ok := c.Locals("actor").(permissions.Actor)
	return actor, ok
}
