package repository

import (
	"time"

	"gorm.io/gorm"

	"sneezelog/internal/models"
)

type SneezeRepository interface {
	Create(sneeze *models.Sneeze) error
	Update(sneeze *models.Sneeze) error
	Delete(id, userID uint) (bool, error)
	FindByID(id, userID uint) (*models.Sneeze, error)
	FindByUser(userID uint, limit int) ([]models.Sneeze, error)
	FindByUserBetween(userID uint, start, end time.Time) ([]models.Sneeze, error)
}

type sneezeRepository struct {
	db *gorm.DB
}

func NewSneezeRepository(db *gorm.DB) SneezeRepository {
	return &sneezeRepository{db: db}
}

// Create a new sneeze record
func (r *sneezeRepository) Create(sneeze *models.Sneeze) error {
	return r.db.Create(sneeze).Error
}

// Update an existing sneeze record
func (r *sneezeRepository) Update(sneeze *models.Sneeze) error {
	return r.db.Save(sneeze).Error
}

// Delete a sneeze owned by the user; reports whether a row was removed
func (r *sneezeRepository) Delete(id, userID uint) (bool, error) {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Sneeze{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByID retrieves a sneeze only when it belongs to the user
func (r *sneezeRepository) FindByID(id, userID uint) (*models.Sneeze, error) {
	var sneeze models.Sneeze
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&sneeze).Error
	if err != nil {
		return nil, err
	}
	return &sneeze, nil
}

// FindByUser retrieves a user's sneezes newest-first; limit <= 0 means all
func (r *sneezeRepository) FindByUser(userID uint, limit int) ([]models.Sneeze, error) {
	var sneezes []models.Sneeze
	query := r.db.Where("user_id = ?", userID).Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&sneezes).Error; err != nil {
		return nil, err
	}
	return sneezes, nil
}

// FindByUserBetween retrieves a user's sneezes with timestamp in [start, end),
// newest-first
func (r *sneezeRepository) FindByUserBetween(userID uint, start, end time.Time) ([]models.Sneeze, error) {
	var sneezes []models.Sneeze
	err := r.db.Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, start, end).
		Order("timestamp DESC").
		Find(&sneezes).Error
	if err != nil {
		return nil, err
	}
	return sneezes, nil
}
