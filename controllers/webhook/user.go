package webhookController

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// userEvent is an identity-provider lifecycle notification
type userEvent struct {
	Type string `json:"type"` // user.created, user.updated, user.deleted
	Data struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		ImageURL string `json:"image_url"`
	} `json:"data"`
}

// HandleUserEvent keeps the local user table in sync with the identity
// provider. Provisioning is webhook-driven; there is no local signup.
func HandleUserEvent(c *fiber.Ctx) error {
	event := new(userEvent)
	if err := c.BodyParser(event); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid event payload!", nil)
	}

	if event.Data.ID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing user id!", nil)
	}

	db := database.Database.Db

	switch event.Type {
	case "user.created":
		user := models.User{
			ExternalID: event.Data.ID,
			Email:      event.Data.Email,
			Name:       event.Data.Name,
			ImageURL:   event.Data.ImageURL,
			Role:       models.RoleStudent,
		}
		// Delivery is at-least-once, so a redelivered created event must
		// land on the existing row instead of tripping the unique index
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "name", "image_url", "updated_at"}),
		}).Create(&user).Error
		if err != nil {
			log.Printf("[WEBHOOK] Failed to create user %s: %v", event.Data.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
		}

	case "user.updated":
		updates := map[string]interface{}{
			"email":     event.Data.Email,
			"name":      event.Data.Name,
			"image_url": event.Data.ImageURL,
		}
		if err := db.Model(&models.User{}).Where("external_id = ?", event.Data.ID).Updates(updates).Error; err != nil {
			log.Printf("[WEBHOOK] Failed to update user %s: %v", event.Data.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
		}

	case "user.deleted":
		if err := db.Model(&models.User{}).Where("external_id = ?", event.Data.ID).Update("is_deleted", true).Error; err != nil {
			log.Printf("[WEBHOOK] Failed to delete user %s: %v", event.Data.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
		}

	default:
		log.Printf("[WEBHOOK] Ignoring unhandled user event type: %s", event.Type)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event processed.", fiber.Map{"received": true})
}
