package organizationController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"lms/database"
	"lms/middleware"
	"lms/models"
	batchModels "lms/models/batch"
	courseModels "lms/models/course"
	"lms/permissions"
)

// loadOwnedBatch fetches a batch and runs the ownership check for the
// caller. A nil batch means the 404 or denial response has already been
// written; the accompanying error is the result of that write and must
// be returned as-is.
func loadOwnedBatch(c *fiber.Ctx, actor permissions.Actor, batchID int) (*batchModels.Batch, error) {
	var batch batchModels.Batch
	if err := database.Database.Db.First(&batch, batchID).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Batch not found!", nil)
	}

	if d := permissions.Authorize(actor, permissions.OpManageBatch, permissions.OwnedByOrg(batch.OrganizationID)); !d.Allowed {
		return nil, middleware.PermissionDenied(c, d)
	}
	return &batch, nil
}

// CreateBatch creates a batch owned by the calling organization.
func CreateBatch(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if d := permissions.Authorize(actor, permissions.OpCreateBatch, permissions.Resource{}); !d.Allowed {
		return middleware.PermissionDenied(c, d)
	}
	if actor.OrgID == nil {
		// Admins pass the gate but a batch must belong to an organization
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Batches must belong to an organization!", nil)
	}

	reqData, ok := c.Locals("validatedBatch").(*struct {
		Name string `json:"name"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	batch := batchModels.Batch{
		Name:           reqData.Name,
		OrganizationID: *actor.OrgID,
	}
	if err := database.Database.Db.Create(&batch).Error; err != nil {
		log.Printf("Error saving batch: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create batch!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Batch created successfully!", batch)
}

// BatchList returns the calling organization's batches.
func BatchList(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if actor.OrgID == nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Batches must belong to an organization!", nil)
	}
	if d := permissions.Authorize(actor, permissions.OpManageBatch, permissions.OwnedByOrg(*actor.OrgID)); !d.Allowed {
		return middleware.PermissionDenied(c, d)
	}

	var batches []batchModels.Batch
	if err := database.Database.Db.Where("organization_id = ?", *actor.OrgID).Order("created_at desc").Find(&batches).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch batches!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batches fetched successfully!", fiber.Map{
		"batches": batches,
	})
}

// AddUserToBatch puts a user into a batch. Membership is a set; adding an
// existing member changes nothing and still succeeds.
func AddUserToBatch(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	batchID, _ := c.Locals("batchID").(int)
	batch, errResp := loadOwnedBatch(c, actor, batchID)
	if batch == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedBatchUser").(*struct {
		UserID uint `json:"user_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, reqData.UserID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var count int64
	if err := database.Database.Db.Table("batch_users").
		Where("batch_id = ? AND user_id = ?", batch.ID, user.ID).
		Count(&count).Error; err != nil {
		log.Printf("Error checking batch membership: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add user to batch!", nil)
	}
	if count == 0 {
		if err := database.Database.Db.Model(batch).Association("Users").Append(&user); err != nil {
			log.Printf("Error adding user to batch: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add user to batch!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User added to batch successfully!", nil)
}

// RemoveUserFromBatch removes a member looked up by username. Removing a
// user who is not a member is NotFound, not a silent success.
func RemoveUserFromBatch(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	batchID, _ := c.Locals("batchID").(int)
	batch, errResp := loadOwnedBatch(c, actor, batchID)
	if batch == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedBatchUsername").(*struct {
		Username string `json:"username"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("username = ?", reqData.Username).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	// Explicit membership check before removal
	var count int64
	if err := database.Database.Db.Table("batch_users").
		Where("batch_id = ? AND user_id = ?", batch.ID, user.ID).
		Count(&count).Error; err != nil {
		log.Printf("Error checking batch membership: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove user from batch!", nil)
	}
	if count == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User is not a member of this batch!", nil)
	}

	if err := database.Database.Db.Model(batch).Association("Users").Delete(&user); err != nil {
		log.Printf("Error removing user from batch: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove user from batch!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User removed from batch successfully!", nil)
}

// AssignCourseToBatch links a course to a batch. Assigning the same course
// twice is a success that leaves a single assignment row; enrollment's
// stricter duplicate policy deliberately does not apply here.
func AssignCourseToBatch(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	batchID, _ := c.Locals("batchID").(int)
	batch, errResp := loadOwnedBatch(c, actor, batchID)
	if batch == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedBatchCourse").(*struct {
		CourseID uint `json:"course_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.First(&course, reqData.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing batchModels.BatchCourse
	if err := database.Database.Db.Where("batch_id = ? AND course_id = ?", batch.ID, course.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course already assigned to batch.", existing)
	}

	assignment := batchModels.BatchCourse{
		BatchID:  batch.ID,
		CourseID: course.ID,
	}
	if err := database.Database.Db.Create(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Course already assigned to batch.", nil)
		}
		log.Printf("Error saving batch course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign course to batch!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course assigned to batch successfully!", assignment)
}

// RemoveCourseFromBatch unassigns a course looked up by its title within
// the batch's assigned courses.
func RemoveCourseFromBatch(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	batchID, _ := c.Locals("batchID").(int)
	batch, errResp := loadOwnedBatch(c, actor, batchID)
	if batch == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedBatchCourseTitle").(*struct {
		CourseTitle string `json:"course_title"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var assignment batchModels.BatchCourse
	err := database.Database.Db.
		Joins("JOIN courses ON courses.id = batch_courses.course_id").
		Where("batch_courses.batch_id = ? AND courses.title = ?", batch.ID, reqData.CourseTitle).
		First(&assignment).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course is not assigned to this batch!", nil)
	}

	if err := database.Database.Db.Delete(&assignment).Error; err != nil {
		log.Printf("Error removing batch course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove course from batch!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course removed from batch successfully!", nil)
}

// BatchCourseList returns the courses assigned to one batch.
func BatchCourseList(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	batchID, _ := c.Locals("batchID").(int)
	batch, errResp := loadOwnedBatch(c, actor, batchID)
	if batch == nil {
		return errResp
	}

	var assignments []batchModels.BatchCourse
	if err := database.Database.Db.Where("batch_id = ?", batch.ID).Preload("Course").Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch batch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch courses fetched successfully!", fiber.Map{
		"courses": assignments,
	})
}

// BatchUserList returns the members of one batch.
func BatchUserList(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	batchID, _ := c.Locals("batchID").(int)
	batch, errResp := loadOwnedBatch(c, actor, batchID)
	if batch == nil {
		return errResp
	}

	var users []models.User
	if err := database.Database.Db.Model(batch).Association("Users").Find(&users); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch batch users!", nil)
	}
	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch users fetched successfully!", fiber.Map{
		"users": users,
	})
}

// AllBatchAssignments lists every batch-course assignment. The endpoint is
// gated on the organization role but not narrowed to the caller's own
// batches.
func AllBatchAssignments(c *fiber.Ctx) error {
	var assignments []batchModels.BatchCourse
	if err := database.Database.Db.Preload("Course").Preload("Batch").Order("created_at desc").Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch batch assignments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch assignments fetched successfully!", fiber.Map{
		"assignments": assignments,
	})
}
