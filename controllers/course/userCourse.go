package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/services/enrollment"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses with pagination
func GetAllCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = false AND is_published = true")

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// contentView strips the material URLs off a content item unless the
// viewer may see them
type contentView struct {
	courseModels.ContentItem
	IsCompleted bool `json:"is_completed"`
}

// GetCourseDetails returns a course with its chapters and content. Lecture
// and task URLs are only included for enrolled users or preview-free items.
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND is_published = true", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var chapters []courseModels.Chapter
	database.Database.Db.Where("course_id = ? AND is_deleted = false", courseID).
		Order("order_index asc").Find(&chapters)

	isEnrolled, err := enrollment.Default.IsEnrolled(userID, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check enrollment!", nil)
	}

	avgRating, err := enrollment.Default.AverageRating(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch rating!", nil)
	}

	completed := map[uint]bool{}
	if isEnrolled {
		progress, err := enrollment.Default.GetProgress(userID, courseID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
		for _, id := range progress.CompletedContentIDs {
			completed[id] = true
		}
	}

	chapterContent := make(map[uint][]contentView, len(chapters))
	for _, chapter := range chapters {
		var items []courseModels.ContentItem
		database.Database.Db.Where("chapter_id = ? AND is_deleted = false", chapter.ID).
			Order("order_index asc").Find(&items)

		views := make([]contentView, len(items))
		for i, item := range items {
			if !isEnrolled && !item.IsPreviewFree {
				item.LectureURL = ""
				item.TaskPdfURL = ""
				item.TaskDescription = ""
			}
			views[i] = contentView{ContentItem: item, IsCompleted: completed[item.ID]}
		}
		chapterContent[chapter.ID] = views
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":          course,
		"chapters":        chapters,
		"chapter_content": chapterContent,
		"is_enrolled":     isEnrolled,
		"average_rating":  avgRating,
	})
}
