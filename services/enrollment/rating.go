package enrollment

import (
	"errors"
	"fmt"

	courseModels "lms/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Rate upserts the user's rating for a course. Only enrolled users may
// rate, and a second rating replaces the first.
func (s *Service) Rate(userID, courseID uint, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	var course courseModels.Course
	err := s.db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidReference
		}
		return fmt.Errorf("load course: %w", err)
	}

	enrolled, err := s.IsEnrolled(userID, courseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return ErrNotEnrolled
	}

	row := courseModels.CourseRating{UserID: userID, CourseID: courseID, Rating: rating}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save rating: %w", err)
	}
	return nil
}

// AverageRating returns the floor of the mean rating, or 0 for an unrated
// course. Floor is the documented policy, so integer division does the
// whole computation.
func (s *Service) AverageRating(courseID uint) (int, error) {
	var ratings []int
	err := s.db.Model(&courseModels.CourseRating{}).
		Where("course_id = ?", courseID).
		Pluck("rating", &ratings).Error
	if err != nil {
		return 0, fmt.Errorf("load ratings: %w", err)
	}
	if len(ratings) == 0 {
		return 0, nil
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return sum / len(ratings), nil
}
