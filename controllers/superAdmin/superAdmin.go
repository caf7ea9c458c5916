package superAdminController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	batchModels "lms/models/batch"
	courseModels "lms/models/course"
)

// UserList returns every account except superusers.
func UserList(c *fiber.Ctx) error {
	var users []models.User
	if err := database.Database.Db.
		Where("is_superuser = ?", false).
		Preload("Profile").
		Order("created_at desc").
		Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user list!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User List.", fiber.Map{
		"users": users,
	})
}

// CreateManagedUser provisions an account on behalf of the caller. When
// the caller is an organization the new user's role is forced to student
// regardless of what the request says; created_by records the caller.
// Used by both the admin and the organization creation endpoints.
func CreateManagedUser(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromLocals(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCreateUser").(*struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if username already exists
	if err := db.Where("username = ?", reqData.Username).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Username is already registered!", nil)
	}

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	role := models.NormalizeRole(reqData.Role)
	if role == "" || (!actor.IsSuperuser && actor.Role == models.RoleOrganization) {
		role = models.RoleStudent
	}

	createdBy := actor.UserID
	newUser := models.User{
		Username: reqData.Username,
		Email:    reqData.Email,
		Password: string(hashedPassword),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		profile := models.Profile{
			UserID:      newUser.ID,
			Role:        role,
			CreatedByID: &createdBy,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Username or email is already registered!", nil)
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created successfully.", newUser)
}

// CreateOrganization atomically creates the account, its organization
// profile row and the organization record itself.
func CreateOrganization(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateOrganization").(*struct {
		Username         string `json:"username"`
		Email            string `json:"email"`
		Password         string `json:"password"`
		Phone            string `json:"phone"`
		OrganizationName string `json:"organization_name"`
		ReferralCode     string `json:"referral_code"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("username = ?", reqData.Username).First(&models.User{}).Error; err == nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"username": "Username is already registered!"})
	}
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.ValidationErrorResponse(c, map[string]string{"email": "Email is already registered!"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Username: reqData.Username,
		Email:    reqData.Email,
		Password: string(hashedPassword),
	}

	// Account, Profile and OrganizationProfile stand or fall together
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		profile := models.Profile{
			UserID:       newUser.ID,
			Role:         models.RoleOrganization,
			Phone:        reqData.Phone,
			ReferralCode: reqData.ReferralCode,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		orgProfile := models.OrganizationProfile{
			UserID: newUser.ID,
			Name:   reqData.OrganizationName,
		}
		return tx.Create(&orgProfile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Username or email is already registered!", nil)
		}
		log.Printf("Error saving organization to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create organization!", nil)
	}

	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Organization created successfully.", newUser)
}

// DeleteUser removes an account with everything hanging off it. Superuser
// accounts cannot be deleted through the API.
func DeleteUser(c *fiber.Ctx) error {
	targetID, ok := c.Locals("targetUserID").(int)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
	}

	db := database.Database.Db

	var target models.User
	if err := db.First(&target, targetID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if target.IsSuperuser {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Superuser accounts cannot be deleted!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		// Organization accounts take their batches down with them
		var orgProfile models.OrganizationProfile
		if err := tx.Where("user_id = ?", target.ID).First(&orgProfile).Error; err == nil {
			var batches []batchModels.Batch
			if err := tx.Where("organization_id = ?", orgProfile.ID).Find(&batches).Error; err != nil {
				return err
			}
			for i := range batches {
				if err := tx.Where("batch_id = ?", batches[i].ID).Delete(&batchModels.BatchCourse{}).Error; err != nil {
					return err
				}
				if err := tx.Exec("DELETE FROM batch_users WHERE batch_id = ?", batches[i].ID).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("organization_id = ?", orgProfile.ID).Delete(&batchModels.Batch{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&orgProfile).Error; err != nil {
				return err
			}
		}

		if err := tx.Exec("DELETE FROM batch_users WHERE user_id = ?", target.ID).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", target.ID).Delete(&courseModels.UserCourse{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", target.ID).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&target).Error
	})
	if err != nil {
		log.Printf("Error deleting user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully.", nil)
}
