package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/permissions"
)

// AssignCourse enrolls a user in a course on behalf of an admin. A second
// assignment of the same pair is a conflict, never a silent success.
func AssignCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAssignment").(*struct {
		UserID   uint `json:"user_id"`
		CourseID uint `json:"course_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, reqData.UserID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var course courseModels.Course
	if err := db.First(&course, reqData.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Check if user is already enrolled
	var existing courseModels.UserCourse
	if err := db.Where("user_id = ? AND course_id = ?", reqData.UserID, reqData.CourseID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	}

	enrollment := courseModels.UserCourse{
		UserID:   reqData.UserID,
		CourseID: reqData.CourseID,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		// Concurrent assigns race past the pre-check; the unique index
		// settles it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
		}
		log.Printf("Error saving enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course assigned successfully!", enrollment)
}

// MyCourses returns the caller's enrolled courses as the public display
// projection. Internal course fields are never exposed here.
func MyCourses(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []courseModels.UserCourse
	if err := database.Database.Db.Where("user_id = ?", actor.UserID).Preload("Course").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	courses := make([]courseModels.DisplayCourse, 0, len(enrollments))
	for i := range enrollments {
		courses = append(courses, enrollments[i].Course.Display())
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// AssignmentList returns every enrollment joined with user and course
// display data. Non-admin callers get an empty list, not an error, so the
// endpoint leaks nothing about existing assignments.
func AssignmentList(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if d := permissions.Authorize(actor, permissions.OpListAssignments, permissions.Resource{}); !d.Allowed {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", fiber.Map{
			"assignments": []fiber.Map{},
		})
	}

	var enrollments []courseModels.UserCourse
	if err := database.Database.Db.Preload("Course").Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	assignments := make([]fiber.Map, 0, len(enrollments))
	for i := range enrollments {
		var user models.User
		username := ""
		email := ""
		if err := database.Database.Db.First(&user, enrollments[i].UserID).Error; err == nil {
			username = user.Username
			email = user.Email
		}
		assignments = append(assignments, fiber.Map{
			"id":          enrollments[i].ID,
			"user_id":     enrollments[i].UserID,
			"username":    username,
			"email":       email,
			"course":      enrollments[i].Course.Display(),
			"enrolled_at": enrollments[i].EnrolledAt,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", fiber.Map{
		"assignments": assignments,
	})
}
