package enrollment

import (
	"errors"
	"fmt"

	courseModels "lms/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Progress summarizes a user's completion state for one course
type Progress struct {
	CompletedContentIDs []uint `json:"completed_content_ids"`
	TotalContentItems   int64  `json:"total_content_items"`
}

// MarkComplete records completion of one content item. It requires an
// enrollment and a content item that actually belongs to the course, so a
// stale client cannot record progress on foreign or deleted material.
// Repeat calls report alreadyComplete instead of failing.
func (s *Service) MarkComplete(userID, courseID, contentItemID uint) (alreadyComplete bool, err error) {
	enrolled, err := s.IsEnrolled(userID, courseID)
	if err != nil {
		return false, err
	}
	if !enrolled {
		return false, ErrNotEnrolled
	}

	var item courseModels.ContentItem
	err = s.db.Where("id = ? AND course_id = ? AND is_deleted = false", contentItemID, courseID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrInvalidReference
		}
		return false, fmt.Errorf("load content item: %w", err)
	}

	completion := courseModels.ContentCompletion{
		UserID:        userID,
		ContentItemID: contentItemID,
		CourseID:      courseID,
	}
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "content_item_id"}},
		DoNothing: true,
	}).Create(&completion)
	if res.Error != nil {
		return false, fmt.Errorf("record completion: %w", res.Error)
	}

	// Zero rows affected means the unique index already held the pair
	return res.RowsAffected == 0, nil
}

// GetProgress returns the completed content ids for (user, course) along
// with the course's total content count
func (s *Service) GetProgress(userID, courseID uint) (*Progress, error) {
	var completedIDs []uint
	err := s.db.Model(&courseModels.ContentCompletion{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Pluck("content_item_id", &completedIDs).Error
	if err != nil {
		return nil, fmt.Errorf("load completions: %w", err)
	}

	var total int64
	err = s.db.Model(&courseModels.ContentItem{}).
		Where("course_id = ? AND is_deleted = false", courseID).
		Count(&total).Error
	if err != nil {
		return nil, fmt.Errorf("count content items: %w", err)
	}

	return &Progress{CompletedContentIDs: completedIDs, TotalContentItems: total}, nil
}
