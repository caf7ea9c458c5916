package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/permissions"
	"lms/utils"
)

// CoursePayload is the validated multipart form for course creation.
type CoursePayload struct {
	Title       string
	Category    string
	Level       string
	PriceType   string
	Price       float64
	OldPrice    *float64
	Instructor  string
	Description string
	YoutubeURL  string
}

// CreateCourse stores a new course for the calling admin or organization.
// Uploaded image/thumbnail/video files are forwarded to the object store
// and only their URLs are kept. Organization callers additionally stamp
// their organization on the course.
func CreateCourse(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*CoursePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	createdBy := actor.UserID
	course := courseModels.Course{
		Title:       reqData.Title,
		Category:    reqData.Category,
		Level:       reqData.Level,
		PriceType:   reqData.PriceType,
		Price:       reqData.Price,
		OldPrice:    reqData.OldPrice,
		Instructor:  reqData.Instructor,
		Description: reqData.Description,
		YoutubeURL:  reqData.YoutubeURL,
		CreatedByID: &createdBy,
	}

	// Courses created under an organization carry its reference
	if actor.Role == models.RoleOrganization && actor.OrgID != nil {
		course.OrganizationID = actor.OrgID
	}

	for field, dest := range map[string]*string{
		"image":     &course.ImageURL,
		"thumbnail": &course.ThumbnailURL,
		"video":     &course.VideoFileURL,
	} {
		file, err := c.FormFile(field)
		if err != nil {
			continue // optional upload
		}
		url, err := utils.UploadMedia(file, "courses")
		if err != nil {
			log.Printf("Error uploading %s: %v", field, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store uploaded media!", nil)
		}
		*dest = url
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error saving course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", viewOf(course))
}

// AdminCourseList returns the courses created by the calling admin,
// narrowed by the same filters as the public list.
func AdminCourseList(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if d := permissions.Authorize(actor, permissions.OpViewAdminCourses, permissions.Resource{}); !d.Allowed {
		return middleware.PermissionDenied(c, d)
	}

	filters := parseCourseFilters(c)

	var courses []courseModels.Course
	db := database.Database.Db.Model(&courseModels.Course{}).Where("created_by_id = ?", actor.UserID)
	if err := applyCourseFilters(db, filters).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	views := make([]courseView, 0, len(courses))
	for _, course := range courses {
		views = append(views, viewOf(course))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": views,
	})
}
