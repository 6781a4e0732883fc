package educatorController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	educatorValidator "lms/validators/educator"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BecomeEducator upgrades the caller's role so they can publish courses
func BecomeEducator(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	res := database.Database.Db.Model(&models.User{}).
		Where("id = ? AND is_deleted = false", userID).
		Update("role", models.RoleEducator)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "You can publish a course now!", nil)
}

// CreateCourse creates a course with its chapters and content items
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	payload, ok := c.Locals("validatedCourse").(*educatorValidator.CreateCoursePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, chapters, contents := payload.ToModels(userID)

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		for i := range chapters {
			chapters[i].CourseID = course.ID
			if err := tx.Create(&chapters[i]).Error; err != nil {
				return err
			}
			for j := range contents[i] {
				contents[i][j].CourseID = course.ID
				contents[i][j].ChapterID = chapters[i].ID
			}
			if len(contents[i]) > 0 {
				if err := tx.Create(&contents[i]).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course created successfully!", fiber.Map{
		"course_id": course.ID,
	})
}

// GetMyCourses lists the educator's own catalog
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []courseModels.Course
	err := database.Database.Db.
		Where("educator_id = ? AND is_deleted = false", userID).
		Order("created_at desc").Find(&courses).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// DeleteCourse soft deletes one of the educator's own courses
func DeleteCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.EducatorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Unauthorized to delete this course!", nil)
	}

	if err := database.Database.Db.Model(&course).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// enrolledStudent pairs a student with the course they bought
type enrolledStudent struct {
	CourseTitle  string `json:"course_title"`
	StudentName  string `json:"student_name"`
	StudentImage string `json:"student_image"`
	PurchasedAt  string `json:"purchased_at"`
}

// Dashboard returns catalog size, completed-purchase earnings and the
// enrolled-student roster for the educator's courses
func Dashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("educator_id = ? AND is_deleted = false", userID).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	courseIDs := make([]uint, len(courses))
	titles := make(map[uint]string, len(courses))
	for i, course := range courses {
		courseIDs[i] = course.ID
		titles[course.ID] = course.Title
	}

	// Only settled purchases count toward earnings; pending and failed do not
	var totalEarnings float64
	if len(courseIDs) > 0 {
		err := db.Model(&models.Purchase{}).
			Where("course_id IN ? AND status = ?", courseIDs, models.PurchaseStatusCompleted).
			Select("COALESCE(SUM(amount), 0)").Scan(&totalEarnings).Error
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute earnings!", nil)
		}
	}

	students, err := enrolledStudentsFor(db, courseIDs, titles)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrolled students!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"total_courses":     len(courses),
		"total_earnings":    totalEarnings,
		"enrolled_students": students,
	})
}

// GetEnrolledStudents returns the purchase-backed student roster across the
// educator's courses
func GetEnrolledStudents(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("educator_id = ? AND is_deleted = false", userID).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	courseIDs := make([]uint, len(courses))
	titles := make(map[uint]string, len(courses))
	for i, course := range courses {
		courseIDs[i] = course.ID
		titles[course.ID] = course.Title
	}

	students, err := enrolledStudentsFor(db, courseIDs, titles)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrolled students!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled students fetched successfully!", fiber.Map{
		"enrolled_students": students,
	})
}

func enrolledStudentsFor(db *gorm.DB, courseIDs []uint, titles map[uint]string) ([]enrolledStudent, error) {
	students := []enrolledStudent{}
	if len(courseIDs) == 0 {
		return students, nil
	}

	var purchases []models.Purchase
	err := db.Preload("User").
		Where("course_id IN ? AND status = ?", courseIDs, models.PurchaseStatusCompleted).
		Order("created_at desc").Find(&purchases).Error
	if err != nil {
		return nil, err
	}

	for _, purchase := range purchases {
		students = append(students, enrolledStudent{
			CourseTitle:  titles[purchase.CourseID],
			StudentName:  purchase.User.Name,
			StudentImage: purchase.User.ImageURL,
			PurchasedAt:  purchase.CreatedAt.Format("2006-01-02"),
		})
	}
	return students, nil
}
