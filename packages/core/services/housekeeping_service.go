package services

import (
	"time"

	"core/models"

	"gorm.io/gorm"
)

// HousekeepingService sweeps up enrollment requests that were never decided
// before their match's deadline. The deadline itself is always enforced at
// request time; this job only clears out the leftovers so they stop holding
// roster slots.
type HousekeepingService struct {
	db *gorm.DB
}

func NewHousekeepingService(db *gorm.DB) *HousekeepingService {
	return &HousekeepingService{
		db: db,
	}
}

func (s *HousekeepingService) staleQuery(db *gorm.DB, now time.Time) *gorm.DB {
	return db.Model(&models.Enrollment{}).
		Joins("JOIN matches ON matches.id = enrollments.match_id").
		Where("enrollments.kind = ? AND enrollments.state = ?", models.EnrollmentPlayer, models.EnrollmentPending).
		Where("matches.state = ?", models.MatchScheduled).
		Where("(matches.enrollment_deadline IS NOT NULL AND matches.enrollment_deadline <= ?) OR (matches.enrollment_deadline IS NULL AND matches.start_time <= ?)",
			now, now.Add(models.MatchDuration))
}

// StalePendingCount returns how many pending player requests sit on matches
// already past their deadline.
func (s *HousekeepingService) StalePendingCount(now time.Time) (int64, error) {
	var count int64
	if err := s.staleQuery(s.db, now).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExpireStaleEnrollments rejects every stale pending player request and
// releases its roster slot. Returns the number of requests swept.
func (s *HousekeepingService) ExpireStaleEnrollments(now time.Time) (int, error) {
	var stale []models.Enrollment
	if err := s.staleQuery(s.db, now).Select("enrollments.*").Find(&stale).Error; err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	ids := make([]uint, 0, len(stale))
	for _, e := range stale {
		ids = append(ids, e.ID)
	}

	err := tx.Model(&models.Enrollment{}).Where("id IN ?", ids).
		Update("state", models.EnrollmentRejected).Error
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	for _, e := range stale {
		if e.PlayerID == nil {
			continue
		}
		err := tx.Exec("DELETE FROM match_players WHERE match_id = ? AND player_id = ?",
			e.MatchID, *e.PlayerID).Error
		if err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}

	return len(stale), nil
}
