package course

import "gorm.io/gorm"

// CourseRating holds at most one rating per (user, course); a re-rating
// replaces the previous value in place.
type CourseRating struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"not null;uniqueIndex:idx_rating_user_course"`
	CourseID uint `json:"course_id" gorm:"not null;uniqueIndex:idx_rating_user_course"`
	Rating   int  `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
}
