package progression

import (
	"encoding/json"
	"fmt"

	"ruha/models"
	"ruha/models/athenaeum"
	"ruha/models/grimoire"

	"gorm.io/gorm"
)

// Rule kinds understood by BadgeRule.
const (
	RuleCoursesCompleted = "coursesCompleted"
	RuleXPAtLeast        = "xpAtLeast"
	RuleLessonsCompleted = "lessonsCompleted"
	RuleJournalEntries   = "journalEntries"
	RuleLevelReached     = "levelReached"
	RuleAllOf            = "allOf"
)

// BadgeRule is the requirement stored on a badge, e.g.
// {"kind":"coursesCompleted","wing":"orrery","count":3}.
type BadgeRule struct {
	Kind   string      `json:"kind"`
	Wing   string      `json:"wing,omitempty"`
	Count  int         `json:"count,omitempty"`
	Amount int         `json:"amount,omitempty"`
	Level  string      `json:"level,omitempty"`
	Rules  []BadgeRule `json:"rules,omitempty"`
}

// LearnerStats is the snapshot a rule is evaluated against.
type LearnerStats struct {
	XP                 int
	CoursesCompleted   int
	CoursesByWing      map[string]int
	LessonsCompleted   int
	ReflectionsWritten int // journal and grimoire entries
}

// ParseBadgeRule decodes and validates a stored rule.
func ParseBadgeRule(raw []byte) (BadgeRule, error) {
	var rule BadgeRule
	if len(raw) == 0 {
		return rule, fmt.Errorf("%w: empty", ErrInvalidBadgeRule)
	}
	if err := json.Unmarshal(raw, &rule); err != nil {
		return rule, fmt.Errorf("%w: %v", ErrInvalidBadgeRule, err)
	}
	return rule, rule.Validate()
}

func (r BadgeRule) Validate() error {
	switch r.Kind {
	case RuleCoursesCompleted:
		if r.Count < 1 {
			return fmt.Errorf("%w: %s needs count >= 1", ErrInvalidBadgeRule, r.Kind)
		}
		if r.Wing != "" && r.Wing != athenaeum.WingSanctum && r.Wing != athenaeum.WingOrrery {
			return fmt.Errorf("%w: unknown wing %q", ErrInvalidBadgeRule, r.Wing)
		}
	case RuleLessonsCompleted, RuleJournalEntries:
		if r.Count < 1 {
			return fmt.Errorf("%w: %s needs count >= 1", ErrInvalidBadgeRule, r.Kind)
		}
	case RuleXPAtLeast:
		if r.Amount < 1 {
			return fmt.Errorf("%w: %s needs amount >= 1", ErrInvalidBadgeRule, r.Kind)
		}
	case RuleLevelReached:
		if _, ok := RankByName(r.Level); !ok {
			return fmt.Errorf("%w: unknown level %q", ErrInvalidBadgeRule, r.Level)
		}
	case RuleAllOf:
		if len(r.Rules) == 0 {
			return fmt.Errorf("%w: allOf needs at least one rule", ErrInvalidBadgeRule)
		}
		for _, sub := range r.Rules {
			if err := sub.Validate(); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidBadgeRule, r.Kind)
	}
	return nil
}

// Satisfied reports whether stats meet the rule.
func (r BadgeRule) Satisfied(s LearnerStats) bool {
	switch r.Kind {
	case RuleCoursesCompleted:
		if r.Wing == "" {
			return s.CoursesCompleted >= r.Count
		}
		return s.CoursesByWing[r.Wing] >= r.Count
	case RuleXPAtLeast:
		return s.XP >= r.Amount
	case RuleLessonsCompleted:
		return s.LessonsCompleted >= r.Count
	case RuleJournalEntries:
		return s.ReflectionsWritten >= r.Count
	case RuleLevelReached:
		want, ok := RankByName(r.Level)
		return ok && LevelFor(s.XP).Rank >= want
	case RuleAllOf:
		for _, sub := range r.Rules {
			if !sub.Satisfied(s) {
				return false
			}
		}
		return len(r.Rules) > 0
	}
	return false
}

// LoadLearnerStats gathers the counters badge rules look at.
func LoadLearnerStats(tx *gorm.DB, userID string) (LearnerStats, error) {
	stats := LearnerStats{CoursesByWing: map[string]int{}}

	var user models.User
	if err := tx.Select("xp").Where("id = ?", userID).First(&user).Error; err != nil {
		return stats, err
	}
	stats.XP = user.XP

	var rows []struct {
		Wing  string
		Total int
	}
	err := tx.Model(&athenaeum.Enrollment{}).
		Select("courses.wing AS wing, COUNT(DISTINCT enrollments.course_id) AS total").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.user_id = ? AND enrollments.status = ?", userID, athenaeum.EnrollmentCompleted).
		Group("courses.wing").
		Scan(&rows).Error
	if err != nil {
		return stats, err
	}
	for _, row := range rows {
		stats.CoursesByWing[row.Wing] = row.Total
		stats.CoursesCompleted += row.Total
	}

	var lessons, journals, pages int64
	if err := tx.Model(&athenaeum.LessonCompletion{}).Where("user_id = ?", userID).Count(&lessons).Error; err != nil {
		return stats, err
	}
	if err := tx.Model(&athenaeum.JournalEntry{}).Where("user_id = ?", userID).Count(&journals).Error; err != nil {
		return stats, err
	}
	if err := tx.Model(&grimoire.Entry{}).Where("user_id = ? AND is_deleted = ?", userID, false).Count(&pages).Error; err != nil {
		return stats, err
	}
	stats.LessonsCompleted = int(lessons)
	stats.ReflectionsWritten = int(journals + pages)

	return stats, nil
}
