// Package testutil provides the shared fixtures for handler tests: an
// isolated in-memory database wired into the global instance and a fiber
// app with the full route table.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	authRoutes "lms/routers/authRoutes"
	courseRoutes "lms/routers/courseRoutes"
	organizationRoutes "lms/routers/organizationRoutes"
	superAdminRoutes "lms/routers/superAdmin"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// Setup wires an isolated in-memory database into the global instance and
// returns it. Each test gets its own database, named after the test.
func Setup(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:          "3000",
		JWTKey:        "test-secret",
		SaltRound:     bcrypt.MinCost,
		DBDialect:     "sqlite",
		MediaBaseURL:  "/uploads",
		MediaLocalDir: t.TempDir(),
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}
	return db
}

// NewApp builds a fiber app with the complete route table.
func NewApp() *fiber.App {
	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	organizationRoutes.SetupOrganizationRoutes(app)
	superAdminRoutes.SetupSuperAdminRoutes(app)
	return app
}

// CreateUser inserts a user with a profile carrying the given role.
// An empty role creates the account without any profile row.
func CreateUser(t *testing.T, db *gorm.DB, username, email, role string, superuser bool) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username:    username,
		Email:       email,
		Password:    string(hashed),
		IsSuperuser: superuser,
	}
	require.NoError(t, db.Create(&user).Error)

	if role != "" {
		profile := models.Profile{UserID: user.ID, Role: role}
		require.NoError(t, db.Create(&profile).Error)
	}
	return user
}

// CreateOrganization inserts an organization account with all three rows.
func CreateOrganization(t *testing.T, db *gorm.DB, username, email, orgName string) (models.User, models.OrganizationProfile) {
	t.Helper()

	user := CreateUser(t, db, username, email, models.RoleOrganization, false)
	org := models.OrganizationProfile{UserID: user.ID, Name: orgName}
	require.NoError(t, db.Create(&org).Error)
	return user, org
}

// AccessToken mints a valid access token for the user.
func AccessToken(t *testing.T, user models.User) string {
	t.Helper()

	token, err := middleware.GenerateAccessToken(user.ID, user.Username, user.IsSuperuser)
	require.NoError(t, err)
	return token
}

// DoJSON performs a JSON request against the app and returns the response.
func DoJSON(t *testing.T, app *fiber.App, method, target string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// DecodeBody unmarshals the standard response envelope.
func DecodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
