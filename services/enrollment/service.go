package enrollment

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentOutcome is the terminal result reported by the payment gateway
type PaymentOutcome string

const (
	OutcomeSucceeded PaymentOutcome = "succeeded"
	OutcomeFailed    PaymentOutcome = "failed"
)

// PaymentLinker creates a hosted payment page URL for a checkout. The
// correlation id must end up in the gateway's callback metadata so the
// webhook can be matched back to the purchase.
type PaymentLinker interface {
	CreatePaymentLink(correlationID string, amount float64, courseTitle string) (string, error)
}

// Notifier sends user-facing emails. Failures are logged, never propagated;
// enrollment state must not depend on the mail provider.
type Notifier interface {
	SendEnrollmentConfirmation(email, name, courseTitle string) error
	SendPaymentFailed(email, name, courseTitle string) error
}

// Service is the enrollment reconciliation core. It owns all writes to
// purchases, enrollments, content completions and ratings.
type Service struct {
	db     *gorm.DB
	links  PaymentLinker
	notify Notifier
}

// Default is set once at startup and used by the HTTP layer.
var Default *Service

func NewService(db *gorm.DB, links PaymentLinker, notify Notifier) *Service {
	return &Service{db: db, links: links, notify: notify}
}

// CheckoutResult is returned to the client so it can redirect to the
// payment page.
type CheckoutResult struct {
	PurchaseID    uint    `json:"purchase_id"`
	CorrelationID string  `json:"correlation_id"`
	Amount        float64 `json:"amount"`
	PaymentURL    string  `json:"payment_url"`
}

// InitiateCheckout records a PENDING purchase and grants enrollment before
// payment confirmation. The optimistic grant keeps course access from
// waiting on webhook delivery; a later failed payment does not revoke it
// (the purchase row keeps the audit trail).
func (s *Service) InitiateCheckout(userID, courseID uint) (*CheckoutResult, error) {
	var user models.User
	if err := s.db.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidReference
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	var course courseModels.Course
	if err := s.db.Where("id = ? AND is_deleted = false AND is_published = true", courseID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidReference
		}
		return nil, fmt.Errorf("load course: %w", err)
	}

	enrolled, err := s.IsEnrolled(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, ErrAlreadyEnrolled
	}

	amount := discountedAmount(course.Price, course.DiscountPercent)
	correlationID := uuid.NewString()

	paymentURL, err := s.links.CreatePaymentLink(correlationID, amount, course.Title)
	if err != nil {
		return nil, fmt.Errorf("create payment link: %w", err)
	}

	purchase := models.Purchase{
		CorrelationID: correlationID,
		UserID:        userID,
		CourseID:      courseID,
		Amount:        amount,
		Status:        models.PurchaseStatusPending,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}
		return grantTx(tx, userID, courseID)
	})
	if err != nil {
		return nil, fmt.Errorf("record checkout: %w", err)
	}

	if s.notify != nil {
		if err := s.notify.SendEnrollmentConfirmation(user.Email, user.Name, course.Title); err != nil {
			log.Printf("Failed to send enrollment email to %s: %v", user.Email, err)
		}
	}

	return &CheckoutResult{
		PurchaseID:    purchase.ID,
		CorrelationID: correlationID,
		Amount:        amount,
		PaymentURL:    paymentURL,
	}, nil
}

// ApplyPaymentEvent settles the purchase matching correlationID. Duplicate
// and out-of-order deliveries are absorbed: the status update only fires
// while the row is still PENDING, so the first terminal event wins and
// every later one is a no-op. payload is the raw gateway event, stored on
// the row that the event settles.
func (s *Service) ApplyPaymentEvent(correlationID string, outcome PaymentOutcome, payload datatypes.JSON) error {
	var purchase models.Purchase
	if err := s.db.Where("correlation_id = ?", correlationID).First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownCorrelation
		}
		return fmt.Errorf("load purchase: %w", err)
	}

	status := models.PurchaseStatusFailed
	if outcome == OutcomeSucceeded {
		status = models.PurchaseStatusCompleted
	}

	updates := map[string]interface{}{
		"status":     status,
		"settled_at": time.Now(),
	}
	if payload != nil {
		updates["gateway_payload"] = payload
	}

	// The conditional write and the grant commit together: if the grant
	// fails, the status rolls back to PENDING and the next delivery
	// re-attempts both. The WHERE on status keeps the terminal transition
	// atomic, so two concurrent deliveries cannot both apply.
	settled := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Purchase{}).
			Where("id = ? AND status = ?", purchase.ID, models.PurchaseStatusPending).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("settle purchase: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Already terminal; duplicate delivery
			return nil
		}
		settled = true

		if outcome == OutcomeSucceeded {
			// Redundant with the optimistic grant in most flows, required
			// for the ones where checkout happened elsewhere
			return grantTx(tx, purchase.UserID, purchase.CourseID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if settled && outcome == OutcomeFailed {
		// The optimistic grant is deliberately kept on failure
		s.notifyPaymentFailed(purchase)
	}

	return nil
}

func (s *Service) notifyPaymentFailed(purchase models.Purchase) {
	if s.notify == nil {
		return
	}

	var user models.User
	if err := s.db.First(&user, purchase.UserID).Error; err != nil {
		return
	}
	var course courseModels.Course
	if err := s.db.First(&course, purchase.CourseID).Error; err != nil {
		return
	}

	if err := s.notify.SendPaymentFailed(user.Email, user.Name, course.Title); err != nil {
		log.Printf("Failed to send payment-failed email to %s: %v", user.Email, err)
	}
}

// Grant enrolls the user in the course. Granting an existing enrollment is
// a no-op.
func (s *Service) Grant(userID, courseID uint) error {
	return grantTx(s.db, userID, courseID)
}

func grantTx(tx *gorm.DB, userID, courseID uint) error {
	edge := courseModels.Enrollment{UserID: userID, CourseID: courseID}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(&edge).Error
	if err != nil {
		return fmt.Errorf("grant enrollment: %w", err)
	}
	return nil
}

// IsEnrolled reports whether the user holds an enrollment for the course
func (s *Service) IsEnrolled(userID, courseID uint) (bool, error) {
	var count int64
	err := s.db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return count > 0, nil
}

// ListForUser returns the ids of all courses the user is enrolled in
func (s *Service) ListForUser(userID uint) ([]uint, error) {
	var courseIDs []uint
	err := s.db.Model(&courseModels.Enrollment{}).
		Where("user_id = ?", userID).
		Pluck("course_id", &courseIDs).Error
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return courseIDs, nil
}

// ListForCourse returns the ids of all users enrolled in the course
func (s *Service) ListForCourse(courseID uint) ([]uint, error) {
	var userIDs []uint
	err := s.db.Model(&courseModels.Enrollment{}).
		Where("course_id = ?", courseID).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, fmt.Errorf("list enrolled users: %w", err)
	}
	return userIDs, nil
}

// SweepStalePending marks PENDING purchases older than olderThan as FAILED.
// The gateway never delivered a terminal event for them; the conditional
// update means a webhook racing the sweep still settles the row exactly
// once. Returns the number of rows swept.
func (s *Service) SweepStalePending(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res := s.db.Model(&models.Purchase{}).
		Where("status = ? AND created_at < ?", models.PurchaseStatusPending, cutoff).
		Updates(map[string]interface{}{
			"status":     models.PurchaseStatusFailed,
			"settled_at": time.Now(),
		})
	if res.Error != nil {
		return 0, fmt.Errorf("sweep pending purchases: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// discountedAmount applies the integer percent discount and rounds to two
// decimals
func discountedAmount(price float64, discountPercent int) float64 {
	amount := price - price*float64(discountPercent)/100
	return math.Round(amount*100) / 100
}
