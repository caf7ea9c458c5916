package courseValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/course"
	"lms/middleware"
	courseModels "lms/models/course"
)

// CreateCourse validates the multipart form for course creation. File
// parts are handled by the controller; this checks the scalar fields.
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := &controllers.CoursePayload{
			Title:       strings.TrimSpace(c.FormValue("title")),
			Category:    strings.TrimSpace(c.FormValue("category")),
			Level:       strings.TrimSpace(c.FormValue("level")),
			PriceType:   strings.TrimSpace(c.FormValue("price_type")),
			Instructor:  strings.TrimSpace(c.FormValue("instructor")),
			Description: strings.TrimSpace(c.FormValue("description")),
			YoutubeURL:  strings.TrimSpace(c.FormValue("youtube_url")),
		}

		errors := make(map[string]string)

		// Validate Title
		if payload.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(payload.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Category
		if payload.Category == "" {
			errors["category"] = "Category is required!"
		} else if !courseModels.ValidCategory(payload.Category) {
			errors["category"] = "Category is not a valid choice!"
		}

		// Validate Level
		if payload.Level == "" {
			errors["level"] = "Level is required!"
		} else if !courseModels.ValidLevel(payload.Level) {
			errors["level"] = "Level must be Beginner, Intermediate or Advance!"
		}

		// Validate PriceType
		if payload.PriceType == "" {
			errors["price_type"] = "Price type is required!"
		} else if !courseModels.ValidPriceType(payload.PriceType) {
			errors["price_type"] = "Price type must be Free or Paid!"
		}

		// Validate Price
		if priceStr := c.FormValue("price"); priceStr == "" {
			errors["price"] = "Price is required!"
		} else if price, err := strconv.ParseFloat(priceStr, 64); err != nil || price < 0 {
			errors["price"] = "Price must be a non-negative number!"
		} else {
			payload.Price = price
		}

		// Optional old price
		if oldStr := c.FormValue("old_price"); oldStr != "" {
			old, err := strconv.ParseFloat(oldStr, 64)
			if err != nil || old < 0 {
				errors["old_price"] = "Old price must be a non-negative number!"
			} else {
				payload.OldPrice = &old
			}
		}

		// Validate Description
		if payload.Description == "" {
			errors["description"] = "Description is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", payload)
		return c.Next()
	}
}

// CourseDetail validates the course id path parameter.
func CourseDetail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// AssignCourse validates an admin enrollment assignment.
func AssignCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID   uint `json:"user_id"`
			CourseID uint `json:"course_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["user_id"] = "User ID is required!"
		}
		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignment", reqData)
		return c.Next()
	}
}
