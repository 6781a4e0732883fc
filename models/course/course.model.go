package course

import "gorm.io/gorm"

// Course represents a published learning course
type Course struct {
	gorm.Model
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	ThumbnailURL    string  `json:"thumbnail_url"`
	Price           float64 `json:"price" gorm:"default:0"`
	DiscountPercent int     `json:"discount_percent" gorm:"default:0;check:discount_percent >= 0 AND discount_percent <= 100"`
	EducatorID      uint    `json:"educator_id" gorm:"index;not null"`
	IsPublished     bool    `json:"is_published" gorm:"default:false"`
	IsDeleted       bool    `gorm:"default:false"`
}

// Chapter groups content items within a course
type Chapter struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

const (
	ContentTypeLecture = "LECTURE"
	ContentTypeTask    = "TASK"
)

// ContentItem is a single unit of course material. The type tag decides
// which of the lecture or task fields are meaningful; the envelope fields
// are shared by both.
type ContentItem struct {
	gorm.Model
	CourseID      uint   `json:"course_id" gorm:"index;not null"`
	ChapterID     uint   `json:"chapter_id" gorm:"index;not null"`
	Title         string `json:"title"`
	ContentType   string `json:"content_type" gorm:"type:varchar(20);default:'TASK'"` // LECTURE or TASK
	OrderIndex    int    `json:"order_index" gorm:"default:0"`
	IsPreviewFree bool   `json:"is_preview_free" gorm:"default:false"`

	// Lecture fields
	DurationMinutes int    `json:"duration_minutes,omitempty" gorm:"default:0"`
	LectureURL      string `json:"lecture_url,omitempty"`

	// Task fields
	TaskDescription string `json:"task_description,omitempty" gorm:"type:text"`
	TaskPdfURL      string `json:"task_pdf_url,omitempty"`

	IsDeleted bool `gorm:"default:false"`
}
