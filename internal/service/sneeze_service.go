package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"sneezelog/internal/cache"
	"sneezelog/internal/dto"
	"sneezelog/internal/models"
	"sneezelog/internal/repository"
)

var (
	ErrSneezeNotFound  = errors.New("sneeze not found")
	ErrInvalidSeverity = errors.New("invalid severity")
)

// SneezeService owns every operation on a user's sneeze records. Every
// method takes the acting user's id and scopes all reads and writes to it;
// a sneeze belonging to another user behaves exactly like a missing one.
type SneezeService interface {
	Create(userID uint, severity models.SeverityLevel, notes string) (*models.Sneeze, error)
	List(userID uint, limit int) ([]models.Sneeze, error)
	ListByMonth(userID uint, year, month int) ([]models.Sneeze, error)
	GetByID(sneezeID, userID uint) (*models.Sneeze, error)
	Update(sneezeID, userID uint, severity *models.SeverityLevel, notes *string) (*models.Sneeze, error)
	Delete(sneezeID, userID uint) (bool, error)
	Stats(userID uint) (*dto.SneezeStats, error)
}

type sneezeService struct {
	sneezeRepo repository.SneezeRepository
	statsCache *cache.StatsCache // nil-safe, may be disabled
}

func NewSneezeService(sneezeRepo repository.SneezeRepository, statsCache *cache.StatsCache) SneezeService {
	return &sneezeService{
		sneezeRepo: sneezeRepo,
		statsCache: statsCache,
	}
}

// Create logs a new sneeze for the user, stamped with the current time.
func (s *sneezeService) Create(userID uint, severity models.SeverityLevel, notes string) (*models.Sneeze, error) {
	if !severity.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeverity, severity)
	}
	if len(notes) > 1000 {
		return nil, fmt.Errorf("%w: notes must be at most 1000 characters", ErrValidation)
	}

	sneeze := &models.Sneeze{
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Severity:  severity,
		Notes:     notes,
	}

	if err := s.sneezeRepo.Create(sneeze); err != nil {
		return nil, err
	}

	s.statsCache.Invalidate(context.Background(), userID)
	return sneeze, nil
}

// List returns the user's sneezes ordered newest-first; limit <= 0 means all.
func (s *sneezeService) List(userID uint, limit int) ([]models.Sneeze, error) {
	return s.sneezeRepo.FindByUser(userID, limit)
}

// ListByMonth returns the user's sneezes with timestamp inside the given
// calendar month, newest-first. The range is half-open: [first of month,
// first of next month), with December rolling over to January of year+1.
func (s *sneezeService) ListByMonth(userID uint, year, month int) ([]models.Sneeze, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be 1-12", ErrValidation)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	var end time.Time
	if month == 12 {
		end = time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	} else {
		end = time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	}

	return s.sneezeRepo.FindByUserBetween(userID, start, end)
}

// GetByID retrieves one sneeze; a record owned by someone else is reported
// as not found.
func (s *sneezeService) GetByID(sneezeID, userID uint) (*models.Sneeze, error) {
	sneeze, err := s.sneezeRepo.FindByID(sneezeID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSneezeNotFound
		}
		return nil, err
	}
	return sneeze, nil
}

// Update applies a partial update: nil severity/notes keep the prior value.
func (s *sneezeService) Update(sneezeID, userID uint, severity *models.SeverityLevel, notes *string) (*models.Sneeze, error) {
	if severity != nil && !severity.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeverity, *severity)
	}
	if notes != nil && len(*notes) > 1000 {
		return nil, fmt.Errorf("%w: notes must be at most 1000 characters", ErrValidation)
	}

	sneeze, err := s.sneezeRepo.FindByID(sneezeID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSneezeNotFound
		}
		return nil, err
	}

	if severity != nil {
		sneeze.Severity = *severity
	}
	if notes != nil {
		sneeze.Notes = *notes
	}

	if err := s.sneezeRepo.Update(sneeze); err != nil {
		return nil, err
	}

	s.statsCache.Invalidate(context.Background(), userID)
	return sneeze, nil
}

// Delete physically removes an owned sneeze; returns false when the record
// is missing or owned by someone else.
func (s *sneezeService) Delete(sneezeID, userID uint) (bool, error) {
	deleted, err := s.sneezeRepo.Delete(sneezeID, userID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.statsCache.Invalidate(context.Background(), userID)
	}
	return deleted, nil
}

// Stats scans all of the user's sneezes and aggregates counts. Today and
// this-month use the same half-open boundaries as ListByMonth. Results are
// cached per user when a cache is configured.
func (s *sneezeService) Stats(userID uint) (*dto.SneezeStats, error) {
	ctx := context.Background()

	if cached, ok := s.statsCache.Get(ctx, userID); ok {
		return cached, nil
	}

	sneezes, err := s.sneezeRepo.FindByUser(userID, 0)
	if err != nil {
		return nil, err
	}

	stats := &dto.SneezeStats{
		SeverityCounts: make(map[models.SeverityLevel]int64, 4),
	}
	for _, level := range models.SeverityLevels() {
		stats.SeverityCounts[level] = 0
	}

	now := time.Now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := range sneezes {
		stats.Total++
		stats.SeverityCounts[sneezes[i].Severity]++
		if !sneezes[i].Timestamp.Before(todayStart) {
			stats.TodayCount++
		}
		if !sneezes[i].Timestamp.Before(monthStart) {
			stats.ThisMonthCount++
		}
	}

	s.statsCache.Set(ctx, userID, stats)
	return stats, nil
}
