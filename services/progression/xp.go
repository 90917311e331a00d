package progression

import (
	"errors"

	"ruha/models"
	"ruha/models/athenaeum"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Outcome describes what a progression action changed.
type Outcome struct {
	Enrollment   *athenaeum.Enrollment       `json:"enrollment,omitempty"`
	XPAwarded    int                         `json:"xp_awarded"`
	Level        LevelInfo                   `json:"level"`
	LeveledUp    bool                        `json:"leveled_up"`
	Certificates []athenaeum.Certificate     `json:"certificates,omitempty"`
	Badges       []athenaeum.Badge           `json:"badges,omitempty"`
	AlreadyDone  bool                        `json:"already_done"`
	Completion   *athenaeum.LessonCompletion `json:"completion,omitempty"`
}

func (o *Outcome) merge(other *Outcome) {
	if other == nil {
		return
	}
	o.XPAwarded += other.XPAwarded
	o.Level = other.Level
	o.LeveledUp = o.LeveledUp || other.LeveledUp
	o.Certificates = append(o.Certificates, other.Certificates...)
	o.Badges = append(o.Badges, other.Badges...)
}

// lockUser loads the user row for update so concurrent XP writes serialize.
func lockUser(tx *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND is_deleted = ?", userID, false).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GrantXP adds delta xp to a user inside tx. It is the only write path for xp:
// it rewrites the cached level, issues level certificates for every rank entered
// and evaluates badges.
func GrantXP(tx *gorm.DB, userID string, delta int) (*Outcome, error) {
	if delta < 0 {
		return nil, ErrNegativeXP
	}
	user, err := lockUser(tx, userID)
	if err != nil {
		return nil, err
	}
	return grantXP(tx, user, delta)
}

func grantXP(tx *gorm.DB, user *models.User, delta int) (*Outcome, error) {
	if delta < 0 {
		return nil, ErrNegativeXP
	}

	before := LevelFor(user.XP)
	after := LevelFor(user.XP + delta)

	if delta > 0 || user.Level != after.Name {
		err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Updates(map[string]interface{}{"xp": user.XP + delta, "level": after.Name}).Error
		if err != nil {
			return nil, err
		}
		user.XP += delta
		user.Level = after.Name
	}

	out := &Outcome{
		XPAwarded: delta,
		Level:     after,
		LeveledUp: after.Rank > before.Rank,
	}

	for _, level := range levelsReached(before.XP, after.XP) {
		cert, created, err := issueLevelCertificate(tx, user.ID, level)
		if err != nil {
			return nil, err
		}
		if created {
			out.Certificates = append(out.Certificates, *cert)
		}
	}

	badges, certs, err := EvaluateBadges(tx, user.ID)
	if err != nil {
		return nil, err
	}
	out.Badges = append(out.Badges, badges...)
	out.Certificates = append(out.Certificates, certs...)

	return out, nil
}
