package handler

import (
	"concert-booking/internal/model"
	"concert-booking/internal/service"
	apperrors "concert-booking/pkg/app_errors"
	"concert-booking/pkg/logger"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service service.BookingService
	auth    gin.HandlerFunc
}

func NewBookingHandler(service service.BookingService, auth gin.HandlerFunc) *BookingHandler {
	return &BookingHandler{service: service, auth: auth}
}

func (h *BookingHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1", h.auth)
	{
		router.GET("bookings", h.GetBookings)
		router.GET("bookings/:id", h.GetBooking)
		router.POST("bookings", h.CreateBooking)
	}
}

type bookingUri struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	booking, err := h.service.MakeBooking(c, currentUser(c), req)
	if err != nil {
		h.handleBookingError(c, err, "CreateBooking")
		return
	}

	c.Header("Location", fmt.Sprintf("/api/v1/bookings/%d", booking.ID))
	handleSuccess(c, model.CreateBookingResponse{BookingID: booking.ID}, http.StatusCreated)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	var uri bookingUri
	if err := BindUri(c, &uri); err != nil {
		return
	}

	booking, err := h.service.GetBooking(c, currentUser(c), uri.ID)
	if err != nil {
		h.handleBookingError(c, err, "GetBooking")
		return
	}

	handleSuccess(c, model.NewBookingResponse(booking), http.StatusOK)
}

func (h *BookingHandler) GetBookings(c *gin.Context) {
	bookings, err := h.service.ListBookings(c, currentUser(c))
	if err != nil {
		h.handleBookingError(c, err, "GetBookings")
		return
	}

	resp := make([]model.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, model.NewBookingResponse(b))
	}

	handleSuccess(c, resp, http.StatusOK)
}

// Helper functions

func (h *BookingHandler) handleBookingError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInvalidRequest):
		log.Warn("Invalid booking request")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking request",
		})
	case errors.Is(err, apperrors.ErrSeatsUnavailable):
		log.Info("Seats unavailable")
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Seats unavailable",
		})
	case errors.Is(err, apperrors.ErrConflict):
		log.Warn("Booking conflict")
		c.Header("Retry-After", "1")
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking conflict, retry later",
		})
	case errors.Is(err, apperrors.ErrBookingNotFound):
		log.Warn("Booking not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, apperrors.ErrBookingForbidden):
		log.Warn("Booking belongs to another user")
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Forbidden",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
