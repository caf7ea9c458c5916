package authController

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
)

// Register creates an Account and its Profile in one transaction. A
// Profile must never exist without its Account on this path, and vice
// versa.
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*struct {
		Username     string `json:"username"`
		Email        string `json:"email"`
		Password     string `json:"password"`
		Phone        string `json:"phone"`
		ReferralCode string `json:"referral_code"`
		Role         string `json:"role"`
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

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	role := models.NormalizeRole(reqData.Role)
	if role == "" {
		role = models.RoleStudent
	}

	referral := reqData.ReferralCode
	if referral == "" {
		referral = utils.GenerateReferralCode()
	}

	newUser := models.User{
		Username: reqData.Username,
		Email:    reqData.Email,
		Password: string(hashedPassword),
	}

	// Account and Profile are created atomically
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		profile := models.Profile{
			UserID:       newUser.ID,
			Role:         role,
			Phone:        reqData.Phone,
			ReferralCode: referral,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		// The unique constraint is the authoritative guard when the
		// pre-checks race with a concurrent registration.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Username or email is already registered!", nil)
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

// Login verifies credentials and returns an access/refresh token pair.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	var result *gorm.DB

	// Retrieve user by username or email
	if reqData.Username != "" {
		result = database.Database.Db.Where("username = ?", reqData.Username).First(&user)
	} else {
		result = database.Database.Db.Where("email = ?", reqData.Email).First(&user)
	}

	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	accessToken, err := middleware.GenerateAccessToken(user.ID, user.Username, user.IsSuperuser)
	if err != nil {
		log.Printf("Error generating access token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}
	refreshToken, err := middleware.GenerateRefreshToken(user.ID)
	if err != nil {
		log.Printf("Error generating refresh token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"access":  accessToken,
		"refresh": refreshToken,
		"user":    user,
	})
}

// RefreshToken exchanges a valid refresh token for a new access token.
// Refresh tokens are not rotated; revoked ones are refused.
func RefreshToken(c *fiber.Ctx) error {
	reqData := new(struct {
		Refresh string `json:"refresh"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Refresh == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Refresh token is required!", nil)
	}

	claims, err := middleware.ParseToken(reqData.Refresh)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token type", nil)
	}

	if jti, _ := claims["jti"].(string); jti != "" {
		var revoked models.RevokedToken
		if err := database.Database.Db.Where("jti = ?", jti).First(&revoked).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Token has been revoked", nil)
		}
	}

	userID, ok := claims["userId"].(float64)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, uint(userID)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	accessToken, err := middleware.GenerateAccessToken(user.ID, user.Username, user.IsSuperuser)
	if err != nil {
		log.Printf("Error generating access token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Token refreshed.", fiber.Map{
		"access": accessToken,
	})
}

// Logout revokes the presented refresh token.
func Logout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Refresh string `json:"refresh"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Refresh == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Refresh token is required!", nil)
	}

	claims, err := middleware.ParseToken(reqData.Refresh)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token type", nil)
	}

	jti, _ := claims["jti"].(string)
	exp, _ := claims["exp"].(float64)
	revoked := models.RevokedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: time.Unix(int64(exp), 0),
	}
	if err := database.Database.Db.Create(&revoked).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		log.Printf("Error revoking token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged out.", nil)
}

// ResetPassword sets a new password for any registered email. There is no
// verification token on this flow.
func ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedReset").(*struct {
		Email       string `json:"email"`
		NewPassword string `json:"new_password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No account with this email!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	user.Password = string(hashedPassword)
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error saving password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	go func(email, username string) {
		if err := utils.SendPasswordChangedEmail(email, username); err != nil {
			log.Printf("Error sending password reset email: %v", err)
		}
	}(user.Email, user.Username)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully.", nil)
}
