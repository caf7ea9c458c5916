package batchValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

// BatchID validates the batch id path parameter.
func BatchID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		batchIDStr := strings.TrimSpace(c.Params("id"))
		if batchIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Batch ID is required!", nil)
		}

		batchID, err := strconv.Atoi(batchIDStr)
		if err != nil || batchID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Batch ID!", nil)
		}

		c.Locals("batchID", batchID)
		return c.Next()
	}
}

func CreateBatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name string `json:"name"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Batch name is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBatch", reqData)
		return c.Next()
	}
}

func BatchUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID uint `json:"user_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.UserID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"user_id": "User ID is required!"})
		}

		c.Locals("validatedBatchUser", reqData)
		return c.Next()
	}
}

func BatchUsername() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Username string `json:"username"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Username) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"username": "Username is required!"})
		}

		c.Locals("validatedBatchUsername", reqData)
		return c.Next()
	}
}

func BatchCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID uint `json:"course_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.CourseID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"course_id": "Course ID is required!"})
		}

		c.Locals("validatedBatchCourse", reqData)
		return c.Next()
	}
}

func BatchCourseTitle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseTitle string `json:"course_title"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.CourseTitle) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"course_title": "Course title is required!"})
		}

		c.Locals("validatedBatchCourseTitle", reqData)
		return c.Next()
	}
}
