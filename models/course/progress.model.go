package course

import "gorm.io/gorm"

// ContentCompletion marks one content item done for one user. Row presence
// is the whole fact; repeat completions collapse on the unique index.
type ContentCompletion struct {
	gorm.Model
	UserID        uint `json:"user_id" gorm:"not null;uniqueIndex:idx_completion_user_content"`
	ContentItemID uint `json:"content_item_id" gorm:"not null;uniqueIndex:idx_completion_user_content"`
	CourseID      uint `json:"course_id" gorm:"index;not null"`
}
