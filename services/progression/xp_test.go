package progression

import (
	"testing"

	"ruha/models/athenaeum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestJournalEntryCrossesRankThreshold(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, 240)
	require.Equal(t, "Prophyte", user.Level)

	out, err := RecordJournalEntry(db, user.ID, &athenaeum.JournalEntry{Content: "The moon spoke softly."}, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, out.XPAwarded)
	assert.True(t, out.LeveledUp)
	assert.Equal(t, "Acolyte", out.Level.Name)

	stored := reloadUser(t, db, user.ID)
	assert.Equal(t, 250, stored.XP)
	assert.Equal(t, "Acolyte", stored.Level)
	assert.Equal(t, "Acolyte", LevelName(stored.XP))
	assert.EqualValues(t, 1, countCertificates(t, db, user.ID, athenaeum.CertificateLevel))
}

func TestGrantXPRejectsNegativeDelta(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, 100)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := GrantXP(tx, user.ID, -5)
		return err
	})
	assert.ErrorIs(t, err, ErrNegativeXP)
	assert.Equal(t, 100, reloadUser(t, db, user.ID).XP)

	_, err = RecordJournalEntry(db, user.ID, &athenaeum.JournalEntry{Content: "x"}, -1)
	assert.ErrorIs(t, err, ErrNegativeXP)
}

func TestGrantXPIssuesOneCertificatePerRank(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, 0)

	var out *Outcome
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = GrantXP(tx, user.ID, 1600)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "Archon (Max)", out.Level.Name)
	require.Len(t, out.Certificates, 3)
	assert.Equal(t, "Acolyte", out.Certificates[0].LevelName)
	assert.Equal(t, "Archon (Max)", out.Certificates[2].LevelName)

	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = GrantXP(tx, user.ID, 500)
		return err
	})
	require.NoError(t, err)
	assert.False(t, out.LeveledUp)
	assert.Empty(t, out.Certificates)

	assert.Equal(t, 2100, reloadUser(t, db, user.ID).XP)
	assert.EqualValues(t, 3, countCertificates(t, db, user.ID, athenaeum.CertificateLevel))
}

func TestGrantXPUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := GrantXP(tx, "ghost", 10)
		return err
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestJournalEntryOnLessonCompletesIt(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, 0)
	course, lessons := createCourse(t, db, athenaeum.WingOrrery, 100, 2, 15)

	_, err := Enroll(db, Policy{}, user.ID, course.ID)
	require.NoError(t, err)

	lessonID := lessons[0].ID
	entry := &athenaeum.JournalEntry{Content: "Saturn returns.", LessonID: &lessonID}
	out, err := RecordJournalEntry(db, user.ID, entry, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, out.XPAwarded)
	require.NotNil(t, out.Completion)
	assert.Equal(t, lessonID, out.Completion.LessonID)
	require.NotNil(t, out.Enrollment)
	assert.Equal(t, 50, out.Enrollment.Progress)
	require.NotNil(t, entry.CourseID)
	assert.Equal(t, course.ID, *entry.CourseID)

	again, err := RecordJournalEntry(db, user.ID, &athenaeum.JournalEntry{Content: "Again.", LessonID: &lessonID}, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, again.XPAwarded)
	assert.Nil(t, again.Completion)

	assert.Equal(t, 35, reloadUser(t, db, user.ID).XP)
}

func TestJournalEntryOnUnjoinedCourse(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, 0)
	_, lessons := createCourse(t, db, athenaeum.WingSanctum, 100, 1, 15)

	lessonID := lessons[0].ID
	out, err := RecordJournalEntry(db, user.ID, &athenaeum.JournalEntry{Content: "Outside looking in.", LessonID: &lessonID}, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, out.XPAwarded)
	assert.Nil(t, out.Completion)

	missing := "missing"
	_, err = RecordJournalEntry(db, user.ID, &athenaeum.JournalEntry{Content: "?", LessonID: &missing}, 10)
	assert.ErrorIs(t, err, ErrLessonNotFound)
	_, err = RecordJournalEntry(db, user.ID, &athenaeum.JournalEntry{Content: "?", CourseID: &missing}, 10)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}
