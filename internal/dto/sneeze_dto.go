package dto

import (
	"time"

	"sneezelog/internal/models"
)

// CreateSneezeRequest: payload for logging a sneeze
type CreateSneezeRequest struct {
	Severity string `json:"severity" binding:"required"`
	Notes    string `json:"notes" binding:"max=1000"`
}

// UpdateSneezeRequest: partial update; nil fields keep their prior value
type UpdateSneezeRequest struct {
	Severity *string `json:"severity,omitempty"`
	Notes    *string `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// SneezeResponse: public view of a sneeze record
type SneezeResponse struct {
	ID        uint                 `json:"id"`
	Timestamp time.Time            `json:"timestamp"`
	Severity  models.SeverityLevel `json:"severity"`
	Notes     string               `json:"notes"`
	CreatedAt time.Time            `json:"created_at"`
}

func FromModelToSneezeResponse(sneeze *models.Sneeze) *SneezeResponse {
	return &SneezeResponse{
		ID:        sneeze.ID,
		Timestamp: sneeze.Timestamp,
		Severity:  sneeze.Severity,
		Notes:     sneeze.Notes,
		CreatedAt: sneeze.CreatedAt,
	}
}

// SneezeStats: aggregate counts over one user's sneezes.
// SeverityCounts always carries all four severities, zero-filled.
type SneezeStats struct {
	Total          int64                          `json:"total_count"`
	SeverityCounts map[models.SeverityLevel]int64 `json:"severity_counts"`
	TodayCount     int64                          `json:"today_count"`
	ThisMonthCount int64                          `json:"this_month_count"`
}
