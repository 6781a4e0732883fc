package enrollment

import (
	"fmt"
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique shared-cache name so every connection in the pool sees the
	// same in-memory database
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Purchase{},
		&courseModels.Course{},
		&courseModels.Chapter{},
		&courseModels.ContentItem{},
		&courseModels.Enrollment{},
		&courseModels.ContentCompletion{},
		&courseModels.CourseRating{},
	))
	return db
}

type stubLinker struct {
	calls int
}

func (s *stubLinker) CreatePaymentLink(correlationID string, amount float64, courseTitle string) (string, error) {
	s.calls++
	return "https://pay.test/" + correlationID, nil
}

type stubNotifier struct {
	confirmations []string
	failures      []string
}

func (s *stubNotifier) SendEnrollmentConfirmation(email, name, courseTitle string) error {
	s.confirmations = append(s.confirmations, email)
	return nil
}

func (s *stubNotifier) SendPaymentFailed(email, name, courseTitle string) error {
	s.failures = append(s.failures, email)
	return nil
}

func newTestService(t *testing.T) (*Service, *gorm.DB, *stubLinker, *stubNotifier) {
	t.Helper()
	db := newTestDB(t)
	linker := &stubLinker{}
	notifier := &stubNotifier{}
	return NewService(db, linker, notifier), db, linker, notifier
}

func seedUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	user := models.User{
		ExternalID: uuid.NewString(),
		Name:       name,
		Email:      name + "@students.test",
		Role:       models.RoleStudent,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, price float64, discount int) courseModels.Course {
	t.Helper()
	course := courseModels.Course{
		Title:           "Intro to Testing",
		Description:     "A course",
		Price:           price,
		DiscountPercent: discount,
		EducatorID:      1,
		IsPublished:     true,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func seedContentItem(t *testing.T, db *gorm.DB, courseID uint, title string) courseModels.ContentItem {
	t.Helper()
	chapter := courseModels.Chapter{CourseID: courseID, Title: "Chapter"}
	require.NoError(t, db.Create(&chapter).Error)

	item := courseModels.ContentItem{
		CourseID:        courseID,
		ChapterID:       chapter.ID,
		Title:           title,
		ContentType:     courseModels.ContentTypeLecture,
		DurationMinutes: 10,
		LectureURL:      "https://videos.test/" + title,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}
