package webhookController

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services/enrollment"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type noopLinker struct{}

func (noopLinker) CreatePaymentLink(correlationID string, amount float64, courseTitle string) (string, error) {
	return "https://pay.test/" + correlationID, nil
}

func setupWebhookApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{WebhookSecret: "test-secret"}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Purchase{},
		&courseModels.Course{},
		&courseModels.Enrollment{},
	))

	database.Database = database.DbInstance{Db: db}
	enrollment.Default = enrollment.NewService(db, noopLinker{}, nil)

	app := fiber.New()
	group := app.Group("/webhook", middleware.VerifyWebhookSignature)
	group.Post("/payment", HandlePaymentEvent)
	group.Post("/user", HandleUserEvent)
	return app, db
}

func postSigned(t *testing.T, app *fiber.App, path, body string, sign bool) int {
	t.Helper()
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if sign {
		req.Header.Set("X-Webhook-Signature", middleware.SignWebhookPayload([]byte(body)))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestPaymentWebhookRejectsUnsignedEvents(t *testing.T) {
	app, _ := setupWebhookApp(t)

	body := `{"event":"payment.succeeded","correlation_id":"abc"}`
	assert.Equal(t, fiber.StatusUnauthorized, postSigned(t, app, "/webhook/payment", body, false))
}

func TestPaymentWebhookDropsUnknownCorrelation(t *testing.T) {
	app, db := setupWebhookApp(t)

	body := `{"event":"payment.failed","correlation_id":"unknown-id"}`
	// 200 so the at-least-once transport stops retrying
	assert.Equal(t, fiber.StatusOK, postSigned(t, app, "/webhook/payment", body, true))

	var purchases int64
	db.Model(&models.Purchase{}).Count(&purchases)
	assert.EqualValues(t, 0, purchases)
}

func TestPaymentWebhookSettlesPurchase(t *testing.T) {
	app, db := setupWebhookApp(t)

	user := models.User{ExternalID: "ext-1", Email: "asha@students.test", Name: "asha"}
	require.NoError(t, db.Create(&user).Error)
	course := courseModels.Course{Title: "Go", Price: 100, EducatorID: 1, IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	result, err := enrollment.Default.InitiateCheckout(user.ID, course.ID)
	require.NoError(t, err)

	body := fmt.Sprintf(`{"event":"payment.succeeded","correlation_id":"%s"}`, result.CorrelationID)
	assert.Equal(t, fiber.StatusOK, postSigned(t, app, "/webhook/payment", body, true))

	var purchase models.Purchase
	require.NoError(t, db.First(&purchase, result.PurchaseID).Error)
	assert.Equal(t, models.PurchaseStatusCompleted, purchase.Status)

	// Replays are acknowledged without further effect
	assert.Equal(t, fiber.StatusOK, postSigned(t, app, "/webhook/payment", body, true))
}

func TestUserWebhookCreateDuplicateDelivery(t *testing.T) {
	app, db := setupWebhookApp(t)

	created := `{"type":"user.created","data":{"id":"ext-dup","email":"dup@students.test","name":"Dup","image_url":""}}`
	assert.Equal(t, fiber.StatusOK, postSigned(t, app, "/webhook/user", created, true))

	// At-least-once delivery: the replay must be acknowledged, not 500
	assert.Equal(t, fiber.StatusOK, postSigned(t, app, "/webhook/user", created, true))

	var users int64
	db.Model(&models.User{}).Where("external_id = ?", "ext-dup").Count(&users)
	assert.EqualValues(t, 1, users)
}

func TestUserWebhookLifecycle(t *testing.T) {
	app, db := setupWebhookApp(t)

	created := `{"type":"user.created","data":{"id":"ext-9","email":"ben@students.test","name":"Ben","image_url":"https://img.test/ben"}}`
	assert.Equal(t, fiber.StatusOK, postSigned(t, app, "/webhook/user", created, true))

	var user models.User
	require.NoError(t, db.Where("external_id = ?", "ext-9").First(&user).Error)
	assert.Equal(t, models.RoleStudent, user.Role)

	updated := `{"type":"user.updated","data":{"id":"ext-9","email":"ben@students.test","name":"Benjamin","image_url":""}}`
	assert.Equal(t, fiber.StatusOK, postSigned(t, app, "/webhook/user", updated, true))

	require.NoError(t, db.Where("external_id = ?", "ext-9").First(&user).Error)
	assert.Equal(t, "Benjamin", user.Name)

	deleted := `{"type":"user.deleted","data":{"id":"ext-9"}}`
	assert.Equal(t, fiber.StatusOK, postSigned(t, app, "/webhook/user", deleted, true))

	require.NoError(t, db.Where("external_id = ?", "ext-9").First(&user).Error)
	assert.True(t, user.IsDeleted)
}
