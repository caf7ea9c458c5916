package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
)

// courseFilters collects the list filters. Values within one field are
// OR-ed (SQL IN); fields combine with AND. An absent field imposes no
// constraint.
type courseFilters struct {
	Categories  []string
	Levels      []string
	PriceTypes  []string
	Instructors []string
}

// parseCourseFilters reads repeated or comma-separated query values.
func parseCourseFilters(c *fiber.Ctx) courseFilters {
	return courseFilters{
		Categories:  queryValues(c, "category"),
		Levels:      queryValues(c, "level"),
		PriceTypes:  queryValues(c, "price_type"),
		Instructors: queryValues(c, "instructor"),
	}
}

func queryValues(c *fiber.Ctx, key string) []string {
	var values []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		for _, part := range strings.Split(string(raw), ",") {
			if v := strings.TrimSpace(part); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

func applyCourseFilters(db *gorm.DB, f courseFilters) *gorm.DB {
	if len(f.Categories) > 0 {
		db = db.Where("category IN ?", f.Categories)
	}
	if len(f.Levels) > 0 {
		db = db.Where("level IN ?", f.Levels)
	}
	if len(f.PriceTypes) > 0 {
		db = db.Where("price_type IN ?", f.PriceTypes)
	}
	if len(f.Instructors) > 0 {
		db = db.Where("instructor IN ?", f.Instructors)
	}
	return db
}

// courseView augments a course record with its resolved media URLs.
type courseView struct {
	courseModels.Course
	ThumbnailURL string  `json:"thumbnail_url"`
	VideoURL     *string `json:"video_url"`
}

func viewOf(course courseModels.Course) courseView {
	v := courseView{Course: course, ThumbnailURL: course.DisplayThumbnailURL()}
	if u := course.DisplayVideoURL(); u != "" {
		v.VideoURL = &u
	}
	return v
}

// CourseList returns the catalog, filtered. Browsing is open to every
// authenticated caller.
func CourseList(c *fiber.Ctx) error {
	filters := parseCourseFilters(c)

	var courses []courseModels.Course
	db := applyCourseFilters(database.Database.Db.Model(&courseModels.Course{}), filters)
	if err := db.Order("created_at desc").Find(&courses).Error; err != nil {
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

// CourseDetail returns one course or 404.
func CourseDetail(c *fiber.Ctx) error {
	courseID, ok := c.Locals("courseID").(int)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", viewOf(course))
}
