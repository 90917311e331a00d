package progression

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrNotEnrolled         = errors.New("not enrolled in this course")
	ErrAlreadyEnrolled     = errors.New("already enrolled in this course")
	ErrPrerequisitesNotMet = errors.New("course prerequisites not completed")
	ErrCourseIncomplete    = errors.New("course progress is below 100%")
	ErrInvalidTransition   = errors.New("enrollment cannot change from its current status")
	ErrNegativeXP          = errors.New("xp awards must not be negative")
	ErrInvalidBadgeRule    = errors.New("invalid badge rule")
)
