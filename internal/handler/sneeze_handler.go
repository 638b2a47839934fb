package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sneezelog/internal/dto"
	"sneezelog/internal/models"
	"sneezelog/internal/service"
)

type SneezeHandler struct {
	sneezeService service.SneezeService
}

func NewSneezeHandler(sneezeService service.SneezeService) *SneezeHandler {
	return &SneezeHandler{sneezeService: sneezeService}
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

func (h *SneezeHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req dto.CreateSneezeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sneeze, err := h.sneezeService.Create(userID, models.SeverityLevel(req.Severity), req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSeverity) || errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToSneezeResponse(sneeze))
}

func (h *SneezeHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	sneezes, err := h.sneezeService.List(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, toSneezeResponses(sneezes))
}

func (h *SneezeHandler) ListByMonth(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}

	sneezes, err := h.sneezeService.ListByMonth(userID, year, month)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, toSneezeResponses(sneezes))
}

func (h *SneezeHandler) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sneezeID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sneeze id"})
		return
	}

	sneeze, err := h.sneezeService.GetByID(sneezeID, userID)
	if err != nil {
		if errors.Is(err, service.ErrSneezeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "sneeze not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToSneezeResponse(sneeze))
}

func (h *SneezeHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sneezeID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sneeze id"})
		return
	}

	var req dto.UpdateSneezeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var severity *models.SeverityLevel
	if req.Severity != nil {
		level := models.SeverityLevel(*req.Severity)
		severity = &level
	}

	sneeze, err := h.sneezeService.Update(sneezeID, userID, severity, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSneezeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "sneeze not found"})
		case errors.Is(err, service.ErrInvalidSeverity), errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToSneezeResponse(sneeze))
}

func (h *SneezeHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sneezeID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sneeze id"})
		return
	}

	deleted, err := h.sneezeService.Delete(sneezeID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "sneeze not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SneezeHandler) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, err := h.sneezeService.Stats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func toSneezeResponses(sneezes []models.Sneeze) []dto.SneezeResponse {
	responses := make([]dto.SneezeResponse, 0, len(sneezes))
	for i := range sneezes {
		responses = append(responses, *dto.FromModelToSneezeResponse(&sneezes[i]))
	}
	return responses
}
