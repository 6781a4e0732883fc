package course

import (
	"gorm.io/gorm"
)

// Enrollment says a user may access a course. Membership is a set: the
// composite unique index makes a second grant for the same pair a no-op,
// never a duplicate row.
type Enrollment struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID uint `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
}
