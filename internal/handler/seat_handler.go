package handler

import (
	"concert-booking/internal/model"
	"concert-booking/internal/service"
	apperrors "concert-booking/pkg/app_errors"
	"concert-booking/pkg/logger"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SeatHandler struct {
	service service.SeatService
}

func NewSeatHandler(service service.SeatService) *SeatHandler {
	return &SeatHandler{service: service}
}

func (h *SeatHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("seats/:date", h.GetSeats)
	}
}

// GetSeats GET /api/v1/seats/2025-09-20T19:30:00Z?status=Unbooked
func (h *SeatHandler) GetSeats(c *gin.Context) {
	date, err := time.Parse(time.RFC3339, c.Param("date"))
	if err != nil {
		h.handleSeatError(c, apperrors.ErrInvalidRequest, "GetSeats")
		return
	}

	seats, err := h.service.ListSeats(c, date, c.Query("status"))
	if err != nil {
		h.handleSeatError(c, err, "GetSeats")
		return
	}

	resp := make([]model.SeatResponse, 0, len(seats))
	for _, s := range seats {
		resp = append(resp, model.NewSeatResponse(s))
	}

	handleSuccess(c, resp, http.StatusOK)
}

func (h *SeatHandler) handleSeatError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInvalidRequest):
		log.Warn("Invalid seat query")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid seat query",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
