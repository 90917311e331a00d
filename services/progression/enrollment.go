package progression

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"ruha/models"
	"ruha/models/athenaeum"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Policy holds the switches that change enrollment rules.
type Policy struct {
	EnforcePrerequisites bool
}

// CourseProgress is round(100 * done / total), capped at 100. A course without
// lessons reports 0.
func CourseProgress(done, total int64) int {
	if total <= 0 || done <= 0 {
		return 0
	}
	p := int(math.Round(100 * float64(done) / float64(total)))
	if p > 100 {
		return 100
	}
	return p
}

// Enroll creates an enrolled record for the learner.
func Enroll(db *gorm.DB, policy Policy, userID, courseID string) (*Outcome, error) {
	var out *Outcome
	err := db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}

		var course athenaeum.Course
		err = tx.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		if err != nil {
			return err
		}

		var active int64
		err = tx.Model(&athenaeum.Enrollment{}).
			Where("user_id = ? AND course_id = ? AND status <> ?", userID, courseID, athenaeum.EnrollmentDropped).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrAlreadyEnrolled
		}

		if policy.EnforcePrerequisites {
			missing, err := missingPrerequisites(tx, userID, course.Prerequisites)
			if err != nil {
				return err
			}
			if len(missing) > 0 {
				return fmt.Errorf("%w: %s", ErrPrerequisitesNotMet, strings.Join(missing, ", "))
			}
		}

		enrollment := athenaeum.Enrollment{
			UserID:     userID,
			CourseID:   courseID,
			Status:     athenaeum.EnrollmentEnrolled,
			Progress:   0,
			EnrolledAt: time.Now().UTC(),
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}

		out = &Outcome{Enrollment: &enrollment, Level: LevelFor(user.XP)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func missingPrerequisites(tx *gorm.DB, userID string, prerequisites []string) ([]string, error) {
	if len(prerequisites) == 0 {
		return nil, nil
	}
	var done []string
	err := tx.Model(&athenaeum.Enrollment{}).
		Where("user_id = ? AND status = ? AND course_id IN ?", userID, athenaeum.EnrollmentCompleted, prerequisites).
		Distinct().Pluck("course_id", &done).Error
	if err != nil {
		return nil, err
	}
	completed := make(map[string]bool, len(done))
	for _, id := range done {
		completed[id] = true
	}
	var missing []string
	for _, id := range prerequisites {
		if !completed[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// currentEnrollment returns the newest non-dropped enrollment for (user, course).
func currentEnrollment(tx *gorm.DB, userID, courseID string) (*athenaeum.Enrollment, error) {
	var enrollment athenaeum.Enrollment
	err := tx.Where("user_id = ? AND course_id = ? AND status <> ?", userID, courseID, athenaeum.EnrollmentDropped).
		Order("enrolled_at desc").
		First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotEnrolled
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// refreshProgress recomputes progress from lesson completions. Progress never goes down.
func refreshProgress(tx *gorm.DB, enrollment *athenaeum.Enrollment) error {
	if enrollment.Status != athenaeum.EnrollmentEnrolled {
		return nil
	}

	var total, done int64
	err := tx.Model(&athenaeum.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", enrollment.CourseID, false).
		Count(&total).Error
	if err != nil {
		return err
	}
	err = tx.Model(&athenaeum.LessonCompletion{}).
		Joins("JOIN lessons ON lessons.id = lesson_completions.lesson_id").
		Where("lesson_completions.user_id = ? AND lesson_completions.course_id = ? AND lessons.is_deleted = ?",
			enrollment.UserID, enrollment.CourseID, false).
		Count(&done).Error
	if err != nil {
		return err
	}

	progress := CourseProgress(done, total)
	if progress <= enrollment.Progress {
		return nil
	}
	if err := tx.Model(enrollment).Update("progress", progress).Error; err != nil {
		return err
	}
	enrollment.Progress = progress
	return nil
}

// CompleteLesson marks a lesson done for an enrolled learner, awards its xp once and
// updates course progress.
func CompleteLesson(db *gorm.DB, userID, lessonID string) (*Outcome, error) {
	var out *Outcome
	err := db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		var lesson athenaeum.Lesson
		err = tx.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLessonNotFound
		}
		if err != nil {
			return err
		}
		out, err = completeLesson(tx, user, &lesson)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func completeLesson(tx *gorm.DB, user *models.User, lesson *athenaeum.Lesson) (*Outcome, error) {
	enrollment, err := currentEnrollment(tx, user.ID, lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status == athenaeum.EnrollmentCompleted {
		return &Outcome{Enrollment: enrollment, Level: LevelFor(user.XP), AlreadyDone: true}, nil
	}

	completion := athenaeum.LessonCompletion{
		UserID:    user.ID,
		LessonID:  lesson.ID,
		CourseID:  lesson.CourseID,
		XPAwarded: lesson.XPReward,
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&completion)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if err := refreshProgress(tx, enrollment); err != nil {
			return nil, err
		}
		return &Outcome{Enrollment: enrollment, Level: LevelFor(user.XP), AlreadyDone: true}, nil
	}

	if err := refreshProgress(tx, enrollment); err != nil {
		return nil, err
	}

	out, err := grantXP(tx, user, lesson.XPReward)
	if err != nil {
		return nil, err
	}
	out.Enrollment = enrollment
	out.Completion = &completion
	return out, nil
}

// CompleteCourse moves an enrollment with full progress to completed, awards the
// course xp and issues the course certificate. Completing twice changes nothing.
func CompleteCourse(db *gorm.DB, userID, courseID string) (*Outcome, error) {
	var out *Outcome
	err := db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}

		var course athenaeum.Course
		err = tx.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		if err != nil {
			return err
		}

		enrollment, err := currentEnrollment(tx, userID, courseID)
		if err != nil {
			return err
		}
		if enrollment.Status == athenaeum.EnrollmentCompleted {
			out = &Outcome{Enrollment: enrollment, Level: LevelFor(user.XP), AlreadyDone: true}
			return nil
		}
		if enrollment.Progress < 100 {
			return ErrCourseIncomplete
		}

		completedAt := time.Now().UTC()
		res := tx.Model(&athenaeum.Enrollment{}).
			Where("id = ? AND status = ?", enrollment.ID, athenaeum.EnrollmentEnrolled).
			Updates(map[string]interface{}{"status": athenaeum.EnrollmentCompleted, "completed_at": completedAt})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		enrollment.Status = athenaeum.EnrollmentCompleted
		enrollment.CompletedAt = &completedAt

		cert, _, err := issueCourseCertificate(tx, userID, &course)
		if err != nil {
			return err
		}

		out, err = grantXP(tx, user, course.XPReward)
		if err != nil {
			return err
		}
		out.Enrollment = enrollment
		out.Certificates = append([]athenaeum.Certificate{*cert}, out.Certificates...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DropCourse ends an active enrollment without any xp or credential effect.
func DropCourse(db *gorm.DB, userID, courseID string) (*athenaeum.Enrollment, error) {
	var dropped *athenaeum.Enrollment
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockUser(tx, userID); err != nil {
			return err
		}
		enrollment, err := currentEnrollment(tx, userID, courseID)
		if err != nil {
			return err
		}
		if enrollment.Status != athenaeum.EnrollmentEnrolled {
			return ErrInvalidTransition
		}

		droppedAt := time.Now().UTC()
		res := tx.Model(&athenaeum.Enrollment{}).
			Where("id = ? AND status = ?", enrollment.ID, athenaeum.EnrollmentEnrolled).
			Updates(map[string]interface{}{
				"status":     athenaeum.EnrollmentDropped,
				"dropped_at": droppedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		enrollment.Status = athenaeum.EnrollmentDropped
		enrollment.DroppedAt = &droppedAt
		dropped = enrollment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dropped, nil
}

// RecordJournalEntry saves a reflection and awards xp for it. An entry tied to a
// lesson of a course the learner is enrolled in also completes that lesson.
func RecordJournalEntry(db *gorm.DB, userID string, entry *athenaeum.JournalEntry, xp int) (*Outcome, error) {
	if xp < 0 {
		return nil, ErrNegativeXP
	}

	var out *Outcome
	err := db.Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}

		var lesson *athenaeum.Lesson
		if entry.LessonID != nil && *entry.LessonID != "" {
			var l athenaeum.Lesson
			err := tx.Where("id = ? AND is_deleted = ?", *entry.LessonID, false).First(&l).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLessonNotFound
			}
			if err != nil {
				return err
			}
			lesson = &l
			courseID := l.CourseID
			entry.CourseID = &courseID
		} else if entry.CourseID != nil && *entry.CourseID != "" {
			var count int64
			if err := tx.Model(&athenaeum.Course{}).Where("id = ? AND is_deleted = ?", *entry.CourseID, false).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrCourseNotFound
			}
		}

		entry.UserID = userID
		entry.XPAwarded = xp
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		out, err = grantXP(tx, user, xp)
		if err != nil {
			return err
		}

		if lesson != nil {
			lessonOut, err := completeLesson(tx, user, lesson)
			switch {
			case errors.Is(err, ErrNotEnrolled):
				// reflection on a course the learner has not joined
			case err != nil:
				return err
			case !lessonOut.AlreadyDone:
				out.Enrollment = lessonOut.Enrollment
				out.Completion = lessonOut.Completion
				out.merge(lessonOut)
			default:
				out.Enrollment = lessonOut.Enrollment
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
