package organizationController_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lms/models"
	batchModels "lms/models/batch"
	courseModels "lms/models/course"
	"lms/testutil"
)

func seedCourse(t *testing.T, db *gorm.DB, title string) courseModels.Course {
	t.Helper()
	c := courseModels.Course{
		Title:       title,
		Category:    "API Testing",
		Level:       "Beginner",
		PriceType:   "Free",
		Instructor:  "Mani",
		Description: "desc",
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func seedBatch(t *testing.T, db *gorm.DB, name string, orgID uint) batchModels.Batch {
	t.Helper()
	b := batchModels.Batch{Name: name, OrganizationID: orgID}
	require.NoError(t, db.Create(&b).Error)
	return b
}

func TestCreateBatch(t *testing.T) {
	db := testutil.Setup(t)
	app := testutil.NewApp()

	orgUser, org := testutil.CreateOrganization(t, db, "acme", "acme@x.com", "Acme")
	student := testutil.CreateUser(t, db, "alice", "a@x.com", models.RoleStudent, false)

	resp := testutil.DoJSON(t, app, "POST", "/organization/batch",
		map[string]string{"name": "spring-intake"}, testutil.AccessToken(t, orgUser))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var batch batchModels.Batch
	require.NoError(t, db.Where("name = ?", "spring-intake").First(&batch).Error)
	assert.Equal(t, org.ID, batch.OrganizationID)

	// Students cannot create batches
	resp = testutil.DoJSON(t, app, "POST", "/organization/batch",
		map[string]string{"name": "rogue"}, testutil.AccessToken(t, student))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAssignCourseToBatchIsIdempotent(t *testing.T) {
	db := testutil.Setup(t)
	app := testutil.NewApp()

	orgUser, org := testutil.CreateOrganization(t, db, "acme", "acme@x.com", "Acme")
	batch := seedBatch(t, db, "spring-intake", org.ID)
	course := seedCourse(t, db, "api-beginner")
	token := testutil.AccessToken(t, orgUser)

	payload := map[string]uint{"course_id": course.ID}

	resp := testutil.DoJSON(t, app, "POST", "/organization/batch/1/course", payload, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Assigning the same course again succeeds without a second row
	resp = testutil.DoJSON(t, app, "POST", "/organization/batch/1/course", payload, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&batchModels.BatchCourse{}).
		Where("batch_id = ? AND course_id = ?", batch.ID, course.ID).
		Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestBatchOwnershipEnforced(t *testing.T) {
	db := testutil.Setup(t)
	app := testutil.NewApp()

	_, org := testutil.CreateOrganization(t, db, "acme", "acme@x.com", "Acme")
	rivalUser, _ := testutil.CreateOrganization(t, db, "rival", "rival@x.com", "Rival")
	seedBatch(t, db, "spring-intake", org.ID)
	course := seedCourse(t, db, "api-beginner")

	// A different organization cannot touch the batch
	rivalToken := testutil.AccessToken(t, rivalUser)
	resp := testutil.DoJSON(t, app, "POST", "/organization/batch/1/course",
		map[string]uint{"course_id": course.ID}, rivalToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := testutil.DecodeBody(t, resp)
	assert.Equal(t, false, body["status"])

	resp = testutil.DoJSON(t, app, "GET", "/organization/batch/1/courses", nil, rivalToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = testutil.DoJSON(t, app, "GET", "/organization/batch/1/users", nil, rivalToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = testutil.DoJSON(t, app, "DELETE", "/organization/batch/1/course",
		map[string]string{"course_title": "api-beginner"}, rivalToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBatchUnknownIsNotFound(t *testing.T) {
	db := testutil.Setup(t)
	app := testutil.NewApp()

	orgUser, _ := testutil.CreateOrganization(t, db, "acme", "acme@x.com", "Acme")
	student := testutil.CreateUser(t, db, "alice", "a@x.com", models.RoleStudent, false)
	token := testutil.AccessToken(t, orgUser)

	resp := testutil.DoJSON(t, app, "POST", "/organization/batch/42/user",
		map[string]uint{"user_id": student.ID}, token)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Batch not found!", testutil.DecodeBody(t, resp)["message"])

	resp = testutil.DoJSON(t, app, "DELETE", "/organization/batch/42/user",
		map[string]string{"username": "alice"}, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = testutil.DoJSON(t, app, "GET", "/organization/batch/42/courses", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = testutil.DoJSON(t, app, "GET", "/organization/batch/42/users", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateBatchRequiresOrganization(t *testing.T) {
	db := testutil.Setup(t)
	app := testutil.NewApp()

	admin := testutil.CreateUser(t, db, "root", "root@x.com", models.RoleAdmin, true)

	resp := testutil.DoJSON(t, app, "POST", "/organization/batch",
		map[string]string{"name": "orphan"}, testutil.AccessToken(t, admin))
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Batches must belong to an organization!", testutil.DecodeBody(t, resp)["message"])

	var count int64
	db.Model(&batchModels.Batch{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestBatchMembershipCheckFailure(t *testing.T) {
	db := testutil.Setup(t)
	app := testutil.NewApp()

	orgUser, org := testutil.CreateOrganization(t, db, "acme", "acme@x.com", "Acme")
	testutil.CreateUser(t, db, "alice", "a@x.com", models.RoleStudent, false)
	seedBatch(t, db, "spring-intake", org.ID)
	token := testutil.AccessToken(t, orgUser)

	// A failing membership lookup is a server error, not a missing member
	require.NoError(t, db.Migrator().DropTable("batch_users"))

	resp := testutil.DoJSON(t, app, "DELETE", "/organization/batch/1/user",
		map[string]string{"username": "alice"}, token)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestBatchMembership(t *testing.T) {
	db := testutil.Setup(t)
	app := testutil.NewApp()

	orgUser, org := testutil.CreateOrganization(t, db, "acme", "acme@x.com", "Acme")
	student := testutil.CreateUser(t, db, "alice", "a@x.com", models.RoleStudent, false)
	batch := seedBatch(t, db, "spring-intake", org.ID)
	token := testutil.AccessToken(t, orgUser)

	// Adding twice leaves a single membership
	resp := testutil.DoJSON(t, app, "POST", "/organization/batch/1/user",
		map[string]uint{"user_id": student.ID}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = testutil.DoJSON(t, app, "POST", "/organization/batch/1/user",
		map[string]uint{"user_id": student.ID}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.Table("batch_users").Where("batch_id = ?", batch.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	// Unknown batch and unknown user are NotFound
	resp = testutil.DoJSON(t, app, "POST", "/organization/batch/99/user",
		map[string]uint{"user_id": student.ID}, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = testutil.DoJSON(t, app, "POST", "/organization/batch/1/user",
		map[string]uint{"user_id": 999}, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Removal requires current membership
	resp = testutil.DoJSON(t, app, "DELETE", "/organization/batch/1/user",
		map[string]string{"username": "alice"}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = testutil.DoJSON(t, app, "DELETE", "/organization/batch/1/user",
		map[string]string{"username": "alice"}, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRemoveCourseFromBatchByTitle(t *testing.T) {
	db := testutil.Setup(t)
	app := testutil.NewApp()

	orgUser, org := testutil.CreateOrganization(t, db, "acme", "acme@x.com", "Acme")
	batch := seedBatch(t, db, "spring-intake", org.ID)
	course := seedCourse(t, db, "api-beginner")
	token := testutil.AccessToken(t, orgUser)

	require.NoError(t, db.Create(&batchModels.BatchCourse{BatchID: batch.ID, CourseID: course.ID}).Error)

	// Lookup is by title within the batch's assignments
	resp := testutil.DoJSON(t, app, "DELETE", "/organization/batch/1/course",
		map[string]string{"course_title": "api-beginner"}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&batchModels.BatchCourse{}).Where("batch_id = ?", batch.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	resp = testutil.DoJSON(t, app, "DELETE", "/organization/batch/1/course",
		map[string]string{"course_title": "api-beginner"}, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrgCreateUserForcedStudent(t *testing.T) {
	db := testutil.Setup(t)
	app := testutil.NewApp()

	orgUser, _ := testutil.CreateOrganization(t, db, "acme", "acme@x.com", "Acme")

	// Requested admin role is ignored for organization callers
	resp := testutil.DoJSON(t, app, "POST", "/organization/user", map[string]string{
		"username": "bob",
		"email":    "bob@x.com",
		"password": "password1",
		"role":     "admin",
	}, testutil.AccessToken(t, orgUser))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var profile models.Profile
	require.NoError(t, db.Joins("JOIN users ON users.id = profiles.user_id").
		Where("users.username = ?", "bob").First(&profile).Error)
	assert.Equal(t, models.RoleStudent, profile.Role)
	require.NotNil(t, profile.CreatedByID)
	assert.Equal(t, orgUser.ID, *profile.CreatedByID)
}

func TestAllBatchAssignmentsGatedButUnscoped(t *testing.T) {
	db := testutil.Setup(t)
	app := testutil.NewApp()

	orgUser, org := testutil.CreateOrganization(t, db, "acme", "acme@x.com", "Acme")
	_, rivalOrg := testutil.CreateOrganization(t, db, "rival", "rival@x.com", "Rival")
	student := testutil.CreateUser(t, db, "alice", "a@x.com", models.RoleStudent, false)

	course := seedCourse(t, db, "api-beginner")
	mine := seedBatch(t, db, "mine", org.ID)
	theirs := seedBatch(t, db, "theirs", rivalOrg.ID)
	require.NoError(t, db.Create(&batchModels.BatchCourse{BatchID: mine.ID, CourseID: course.ID}).Error)
	require.NoError(t, db.Create(&batchModels.BatchCourse{BatchID: theirs.ID, CourseID: course.ID}).Error)

	// Organization callers see every assignment, not just their own
	resp := testutil.DoJSON(t, app, "GET", "/organization/batch-assignments", nil, testutil.AccessToken(t, orgUser))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assignments := testutil.DecodeBody(t, resp)["data"].(map[string]interface{})["assignments"].([]interface{})
	assert.Len(t, assignments, 2)

	// Students are gated out
	resp = testutil.DoJSON(t, app, "GET", "/organization/batch-assignments", nil, testutil.AccessToken(t, student))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
