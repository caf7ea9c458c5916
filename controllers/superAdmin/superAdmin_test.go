package superAdminController_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms/models"
	batchModels "lms/models/batch"
	courseModels "lms/models/course"
	"lms/testutil"
)

func TestAdminCreateUser(t *testing.T) {
	db := testutil.Setup(t)
	app := testutil.NewApp()

	admin := testutil.CreateUser(t, db, "root", "root@x.com", models.RoleAdmin, true)

	// Admin may set an explicit role
	resp := testutil.DoJSON(t, app, "POST", "/admin/user", map[string]string{
		"username": "bob",
		"email":    "bob@x.com",
		"password": "password1",
		"role":     "Admin",
	}, testutil.AccessToken(t, admin))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var profile models.Profile
	require.NoError(t, db.Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.username = ?", "bob").First(&profile).Error)
	assert.Equal(t, models.RoleAdmin, profile.Role, "role values are case-normalized")
	require.NotNil(t, profile.CreatedByID)
	assert.Equal(t, admin.ID, *profile.CreatedByID)

	// Duplicate username is a conflict
	resp = testutil.DoJSON(t, app, "POST", "/admin/user", map[string]string{
		"username": "bob",
		"email":    "bob2@x.com",
		"password": "password1",
	}, testutil.AccessToken(t, admin))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateOrganizationAtomic(t *testing.T) {
	db := testutil.Setup(t)
	app := testutil.NewApp()

	admin := testutil.CreateUser(t, db, "root", "root@x.com", models.RoleAdmin, true)
	student := testutil.CreateUser(t, db, "alice", "a@x.com", models.RoleStudent, false)

	payload := map[string]string{
		"username":          "acme",
		"email":             "acme@x.com",
		"password":          "password1",
		"phone":             "5550100",
		"organization_name": "Acme Academy",
	}

	// Admin-only
	resp := testutil.DoJSON(t, app, "POST", "/admin/organization", payload, testutil.AccessToken(t, student))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = testutil.DoJSON(t, app, "POST", "/admin/organization", payload, testutil.AccessToken(t, admin))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Where("username = ?", "acme").First(&user).Error)

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, models.RoleOrganization, profile.Role)

	var org models.OrganizationProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&org).Error)
	assert.Equal(t, "Acme Academy", org.Name)

	// Colliding email reports the offending field
	payload["username"] = "acme2"
	resp = testutil.DoJSON(t, app, "POST", "/admin/organization", payload, testutil.AccessToken(t, admin))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	fields := testutil.DecodeBody(t, resp)["data"].(map[string]interface{})
	assert.Contains(t, fields, "email")
}

func TestCreateOrganizationMissingFields(t *testing.T) {
	db := testutil.Setup(t)
	app := testutil.NewApp()

	admin := testutil.CreateUser(t, db, "root", "root@x.com", models.RoleAdmin, true)

	resp := testutil.DoJSON(t, app, "POST", "/admin/organization", map[string]string{
		"username": "acme",
	}, testutil.AccessToken(t, admin))
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	fields := testutil.DecodeBody(t, resp)["data"].(map[string]interface{})
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "organization_name")
}

func TestDeleteUserRefusesSuperuser(t *testing.T) {
	db := testutil.Setup(t)
	app := testutil.NewApp()

	admin := testutil.CreateUser(t, db, "root", "root@x.com", models.RoleAdmin, true)
	other := testutil.CreateUser(t, db, "root2", "root2@x.com", models.RoleAdmin, true)

	var before int64
	db.Model(&models.User{}).Count(&before)

	resp := testutil.DoJSON(t, app, "DELETE", "/admin/user/2", nil, testutil.AccessToken(t, admin))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var after int64
	db.Model(&models.User{}).Count(&after)
	assert.Equal(t, before, after, "account count unchanged")

	var still models.User
	assert.NoError(t, db.First(&still, other.ID).Error)
}

func TestDeleteUserCascades(t *testing.T) {
	db := testutil.Setup(t)
	app := testutil.NewApp()

	admin := testutil.CreateUser(t, db, "root", "root@x.com", models.RoleAdmin, true)
	orgUser, org := testutil.CreateOrganization(t, db, "acme", "acme@x.com", "Acme")

	course := courseModels.Course{Title: "api", Category: "API Testing", Level: "Beginner", PriceType: "Free"}
	require.NoError(t, db.Create(&course).Error)
	require.NoError(t, db.Create(&courseModels.UserCourse{UserID: orgUser.ID, CourseID: course.ID}).Error)

	batch := batchModels.Batch{Name: "spring", OrganizationID: org.ID}
	require.NoError(t, db.Create(&batch).Error)
	require.NoError(t, db.Create(&batchModels.BatchCourse{BatchID: batch.ID, CourseID: course.ID}).Error)

	resp := testutil.DoJSON(t, app, "DELETE", "/admin/user/2", nil, testutil.AccessToken(t, admin))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.User{}).Where("id = ?", orgUser.ID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&models.Profile{}).Where("user_id = ?", orgUser.ID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&models.OrganizationProfile{}).Where("user_id = ?", orgUser.ID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&courseModels.UserCourse{}).Where("user_id = ?", orgUser.ID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&batchModels.Batch{}).Where("organization_id = ?", org.ID).Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&batchModels.BatchCourse{}).Where("batch_id = ?", batch.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestDeleteUserNotFound(t *testing.T) {
	db := testutil.Setup(t)
	app := testutil.NewApp()

	admin := testutil.CreateUser(t, db, "root", "root@x.com", models.RoleAdmin, true)

	resp := testutil.DoJSON(t, app, "DELETE", "/admin/user/999", nil, testutil.AccessToken(t, admin))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUserListExcludesSuperusers(t *testing.T) {
	db := testutil.Setup(t)
	app := testutil.NewApp()

	admin := testutil.CreateUser(t, db, "root", "root@x.com", models.RoleAdmin, true)
	testutil.CreateUser(t, db, "alice", "a@x.com", models.RoleStudent, false)
	testutil.CreateUser(t, db, "bob", "b@x.com", models.RoleStudent, false)

	resp := testutil.DoJSON(t, app, "GET", "/admin/users", nil, testutil.AccessToken(t, admin))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	users := testutil.DecodeBody(t, resp)["data"].(map[string]interface{})["users"].([]interface{})
	assert.Len(t, users, 2)
	for _, u := range users {
		entry := u.(map[string]interface{})
		assert.NotEqual(t, "root", entry["username"])
		assert.Empty(t, entry["password"])
	}
}
