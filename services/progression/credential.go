package progression

import (
	"fmt"
	"strings"
	"time"

	"ruha/logger"
	"ruha/models/athenaeum"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IssueCertificate inserts cert unless one already exists for (user, type, reference).
// It reports whether a new row was written; on a duplicate, cert is filled from the
// stored record.
func IssueCertificate(tx *gorm.DB, cert *athenaeum.Certificate) (bool, error) {
	if cert.IssuedAt.IsZero() {
		cert.IssuedAt = time.Now().UTC()
	}
	if cert.CertificateNumber == "" {
		cert.CertificateNumber = certificateNumber(cert.Type, cert.IssuedAt)
	}

	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(cert)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	var existing athenaeum.Certificate
	err := tx.Where("user_id = ? AND type = ? AND reference_id = ?", cert.UserID, cert.Type, cert.ReferenceID).
		First(&existing).Error
	if err != nil {
		return false, err
	}
	*cert = existing
	return false, nil
}

func certificateNumber(kind string, at time.Time) string {
	prefix := "C"
	switch kind {
	case athenaeum.CertificateBadge:
		prefix = "B"
	case athenaeum.CertificateLevel:
		prefix = "L"
	}
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
	return fmt.Sprintf("JR-%s%d-%s", prefix, at.Year(), token)
}

func issueCourseCertificate(tx *gorm.DB, userID string, course *athenaeum.Course) (*athenaeum.Certificate, bool, error) {
	courseID := course.ID
	cert := &athenaeum.Certificate{
		UserID:      userID,
		Type:        athenaeum.CertificateCourse,
		ReferenceID: course.ID,
		CourseID:    &courseID,
		Title:       course.Title,
	}
	created, err := IssueCertificate(tx, cert)
	return cert, created, err
}

func issueLevelCertificate(tx *gorm.DB, userID string, level LevelInfo) (*athenaeum.Certificate, bool, error) {
	cert := &athenaeum.Certificate{
		UserID:      userID,
		Type:        athenaeum.CertificateLevel,
		ReferenceID: level.Name,
		LevelName:   level.Name,
		Title:       "Rank of " + level.Name,
	}
	created, err := IssueCertificate(tx, cert)
	return cert, created, err
}

// AwardBadge records the badge and its certificate. Repeated awards are no-ops.
func AwardBadge(tx *gorm.DB, userID string, badge *athenaeum.Badge) (*athenaeum.Certificate, bool, error) {
	earned := athenaeum.UserBadge{
		UserID:   userID,
		BadgeID:  badge.ID,
		EarnedAt: time.Now().UTC(),
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&earned)
	if res.Error != nil {
		return nil, false, res.Error
	}

	badgeID := badge.ID
	cert := &athenaeum.Certificate{
		UserID:      userID,
		Type:        athenaeum.CertificateBadge,
		ReferenceID: badge.ID,
		BadgeID:     &badgeID,
		Title:       badge.Name,
	}
	created, err := IssueCertificate(tx, cert)
	if err != nil {
		return nil, false, err
	}
	return cert, res.RowsAffected > 0 || created, nil
}

// EvaluateBadges awards every badge whose rule the learner now satisfies.
func EvaluateBadges(tx *gorm.DB, userID string) ([]athenaeum.Badge, []athenaeum.Certificate, error) {
	var earnedIDs []string
	if err := tx.Model(&athenaeum.UserBadge{}).Where("user_id = ?", userID).Pluck("badge_id", &earnedIDs).Error; err != nil {
		return nil, nil, err
	}
	earned := make(map[string]bool, len(earnedIDs))
	for _, id := range earnedIDs {
		earned[id] = true
	}

	var badges []athenaeum.Badge
	if err := tx.Where("is_deleted = ?", false).Order("created_at asc").Find(&badges).Error; err != nil {
		return nil, nil, err
	}

	var stats *LearnerStats
	var awarded []athenaeum.Badge
	var certs []athenaeum.Certificate
	for i := range badges {
		badge := &badges[i]
		if earned[badge.ID] {
			continue
		}
		rule, err := ParseBadgeRule(badge.Requirements)
		if err != nil {
			logger.Log.Warn("Skipping badge with invalid rule", "badge_id", badge.ID, "error", err)
			continue
		}
		if stats == nil {
			s, err := LoadLearnerStats(tx, userID)
			if err != nil {
				return nil, nil, err
			}
			stats = &s
		}
		if !rule.Satisfied(*stats) {
			continue
		}

		cert, created, err := AwardBadge(tx, userID, badge)
		if err != nil {
			return nil, nil, err
		}
		if created {
			awarded = append(awarded, *badge)
			certs = append(certs, *cert)
		}
	}
	return awarded, certs, nil
}
