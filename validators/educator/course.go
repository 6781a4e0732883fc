package educatorValidator

import (
	"fmt"

	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ContentItemPayload carries one lecture or task. The required_if tags
// enforce the variant: lectures need a duration and a video URL, tasks a
// description and a PDF URL.
type ContentItemPayload struct {
	Title         string `json:"title" validate:"required"`
	ContentType   string `json:"content_type" validate:"required,oneof=LECTURE TASK"`
	OrderIndex    int    `json:"order_index" validate:"gte=0"`
	IsPreviewFree bool   `json:"is_preview_free"`

	DurationMinutes int    `json:"duration_minutes" validate:"required_if=ContentType LECTURE,omitempty,gt=0"`
	LectureURL      string `json:"lecture_url" validate:"required_if=ContentType LECTURE,omitempty,url"`

	TaskDescription string `json:"task_description" validate:"required_if=ContentType TASK"`
	TaskPdfURL      string `json:"task_pdf_url" validate:"required_if=ContentType TASK,omitempty,url"`
}

type ChapterPayload struct {
	Title      string               `json:"title" validate:"required"`
	OrderIndex int                  `json:"order_index" validate:"gte=0"`
	Content    []ContentItemPayload `json:"content" validate:"min=1,dive"`
}

type CreateCoursePayload struct {
	Title           string           `json:"title" validate:"required"`
	Description     string           `json:"description"`
	ThumbnailURL    string           `json:"thumbnail_url" validate:"omitempty,url"`
	Price           float64          `json:"price" validate:"gte=0"`
	DiscountPercent int              `json:"discount_percent" validate:"gte=0,lte=100"`
	IsPublished     bool             `json:"is_published"`
	Chapters        []ChapterPayload `json:"chapters" validate:"dive"`
}

// CreateCourse validates the nested course payload and stores it in Locals
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCoursePayload)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = fmt.Sprintf("failed on '%s' rule", fieldErr.Tag())
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// ToModels converts the validated payload into course rows. Content rows
// reference chapters by slice position; ids are filled in after the
// chapters are created.
func (p *CreateCoursePayload) ToModels(educatorID uint) (courseModels.Course, []courseModels.Chapter, [][]courseModels.ContentItem) {
	course := courseModels.Course{
		Title:           p.Title,
		Description:     p.Description,
		ThumbnailURL:    p.ThumbnailURL,
		Price:           p.Price,
		DiscountPercent: p.DiscountPercent,
		EducatorID:      educatorID,
		IsPublished:     p.IsPublished,
	}

	chapters := make([]courseModels.Chapter, len(p.Chapters))
	contents := make([][]courseModels.ContentItem, len(p.Chapters))
	for i, ch := range p.Chapters {
		chapters[i] = courseModels.Chapter{Title: ch.Title, OrderIndex: ch.OrderIndex}
		items := make([]courseModels.ContentItem, len(ch.Content))
		for j, item := range ch.Content {
			items[j] = courseModels.ContentItem{
				Title:           item.Title,
				ContentType:     item.ContentType,
				OrderIndex:      item.OrderIndex,
				IsPreviewFree:   item.IsPreviewFree,
				DurationMinutes: item.DurationMinutes,
				LectureURL:      item.LectureURL,
				TaskDescription: item.TaskDescription,
				TaskPdfURL:      item.TaskPdfURL,
			}
		}
		contents[i] = items
	}

	return course, chapters, contents
}
