package middleware

import (
	"errors"

	"ruha/logger"
	"ruha/services/progression"

	"github.com/gofiber/fiber/v2"
)

// ServiceError answers a progression error with its HTTP status. Anything unexpected
// is logged and answered with a generic 500 carrying fallback as message.
func ServiceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, progression.ErrUserNotFound):
		return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	case errors.Is(err, progression.ErrCourseNotFound),
		errors.Is(err, progression.ErrLessonNotFound),
		errors.Is(err, progression.ErrNotEnrolled):
		return JsonResponse(c, fiber.StatusNotFound, false, capitalize(err.Error()), nil)
	case errors.Is(err, progression.ErrAlreadyEnrolled):
		return JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	case errors.Is(err, progression.ErrPrerequisitesNotMet),
		errors.Is(err, progression.ErrCourseIncomplete),
		errors.Is(err, progression.ErrInvalidTransition),
		errors.Is(err, progression.ErrNegativeXP),
		errors.Is(err, progression.ErrInvalidBadgeRule):
		return JsonResponse(c, fiber.StatusBadRequest, false, capitalize(err.Error()), nil)
	}

	logger.Log.Error(fallback, "path", c.Path(), "error", err)
	return JsonResponse(c, fiber.StatusInternalServerError, false, fallback, nil)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:] + "!"
	}
	return s + "!"
}
