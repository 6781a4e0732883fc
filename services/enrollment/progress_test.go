package enrollment

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkCompleteIsIdempotent(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	user := seedUser(t, db, "asha")
	course := seedCourse(t, db, 300, 0)
	item := seedContentItem(t, db, course.ID, "lesson-1")

	require.NoError(t, svc.Grant(user.ID, course.ID))

	already, err := svc.MarkComplete(user.ID, course.ID, item.ID)
	require.NoError(t, err)
	assert.False(t, already)

	already, err = svc.MarkComplete(user.ID, course.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, already)

	var rows int64
	db.Model(&courseModels.ContentCompletion{}).Count(&rows)
	assert.EqualValues(t, 1, rows)
}

func TestMarkCompleteRequiresEnrollment(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	user := seedUser(t, db, "ben")
	course := seedCourse(t, db, 300, 0)
	item := seedContentItem(t, db, course.ID, "lesson-1")

	_, err := svc.MarkComplete(user.ID, course.ID, item.ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)

	var rows int64
	db.Model(&courseModels.ContentCompletion{}).Count(&rows)
	assert.EqualValues(t, 0, rows)
}

func TestMarkCompleteRejectsForeignContent(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	user := seedUser(t, db, "asha")
	course := seedCourse(t, db, 300, 0)
	other := seedCourse(t, db, 400, 0)
	foreignItem := seedContentItem(t, db, other.ID, "other-lesson")

	require.NoError(t, svc.Grant(user.ID, course.ID))

	// Item exists but belongs to a different course
	_, err := svc.MarkComplete(user.ID, course.ID, foreignItem.ID)
	assert.ErrorIs(t, err, ErrInvalidReference)

	// Item does not exist at all
	_, err = svc.MarkComplete(user.ID, course.ID, foreignItem.ID+99)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestGetProgress(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	user := seedUser(t, db, "asha")
	course := seedCourse(t, db, 300, 0)
	item1 := seedContentItem(t, db, course.ID, "lesson-1")
	seedContentItem(t, db, course.ID, "lesson-2")
	seedContentItem(t, db, course.ID, "lesson-3")

	require.NoError(t, svc.Grant(user.ID, course.ID))
	_, err := svc.MarkComplete(user.ID, course.ID, item1.ID)
	require.NoError(t, err)

	progress, err := svc.GetProgress(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{item1.ID}, progress.CompletedContentIDs)
	assert.EqualValues(t, 3, progress.TotalContentItems)
}

func TestGetProgressEmpty(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	user := seedUser(t, db, "asha")
	course := seedCourse(t, db, 300, 0)

	progress, err := svc.GetProgress(user.ID, course.ID)
	require.NoError(t, err)
	assert.Empty(t, progress.CompletedContentIDs)
	assert.EqualValues(t, 0, progress.TotalContentItems)
}
