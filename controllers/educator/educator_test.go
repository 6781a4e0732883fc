package educatorController

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupEducatorApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Purchase{},
		&courseModels.Course{},
	))

	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	educatorOnly := middleware.RequireRole(models.RoleEducator)
	group := app.Group("/educator")
	group.Get("/dashboard", middleware.JWTMiddleware, educatorOnly, Dashboard)
	group.Get("/enrolled-students", middleware.JWTMiddleware, educatorOnly, GetEnrolledStudents)
	return app, db
}

func seedAppUser(t *testing.T, db *gorm.DB, name, role string) models.User {
	t.Helper()
	user := models.User{
		ExternalID: uuid.NewString(),
		Name:       name,
		Email:      name + "@users.test",
		Role:       role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func getAs(t *testing.T, app *fiber.App, user models.User, path string) (int, map[string]interface{}) {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestDashboardRejectsStudents(t *testing.T) {
	app, db := setupEducatorApp(t)
	student := seedAppUser(t, db, "asha", models.RoleStudent)

	status, _ := getAs(t, app, student, "/educator/dashboard")
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = getAs(t, app, student, "/educator/enrolled-students")
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestDashboardSumsOnlyCompletedPurchases(t *testing.T) {
	app, db := setupEducatorApp(t)
	educator := seedAppUser(t, db, "mira", models.RoleEducator)
	other := seedAppUser(t, db, "omar", models.RoleEducator)
	student := seedAppUser(t, db, "asha", models.RoleStudent)

	c1 := courseModels.Course{Title: "Go", Price: 1000, EducatorID: educator.ID, IsPublished: true}
	require.NoError(t, db.Create(&c1).Error)
	c2 := courseModels.Course{Title: "SQL", Price: 500, EducatorID: educator.ID, IsPublished: true}
	require.NoError(t, db.Create(&c2).Error)
	foreign := courseModels.Course{Title: "CSS", Price: 400, EducatorID: other.ID, IsPublished: true}
	require.NoError(t, db.Create(&foreign).Error)

	purchases := []models.Purchase{
		{CorrelationID: uuid.NewString(), UserID: student.ID, CourseID: c1.ID, Amount: 800, Status: models.PurchaseStatusCompleted},
		{CorrelationID: uuid.NewString(), UserID: student.ID, CourseID: c2.ID, Amount: 100, Status: models.PurchaseStatusCompleted},
		{CorrelationID: uuid.NewString(), UserID: student.ID, CourseID: c1.ID, Amount: 500, Status: models.PurchaseStatusPending},
		{CorrelationID: uuid.NewString(), UserID: student.ID, CourseID: c2.ID, Amount: 300, Status: models.PurchaseStatusFailed},
		{CorrelationID: uuid.NewString(), UserID: student.ID, CourseID: foreign.ID, Amount: 400, Status: models.PurchaseStatusCompleted},
	}
	require.NoError(t, db.Create(&purchases).Error)

	status, body := getAs(t, app, educator, "/educator/dashboard")
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]interface{})
	// Pending, failed and other educators' purchases do not count
	assert.Equal(t, 900.0, data["total_earnings"])
	assert.Equal(t, 2.0, data["total_courses"])

	// The roster only lists the settled purchases on own courses
	students := data["enrolled_students"].([]interface{})
	assert.Len(t, students, 2)
}
