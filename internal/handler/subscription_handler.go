package handler

import (
	"concert-booking/internal/model"
	"concert-booking/internal/notify"
	"concert-booking/internal/service"
	apperrors "concert-booking/pkg/app_errors"
	"concert-booking/pkg/logger"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SubscriptionHandler struct {
	service service.SubscriptionService
	auth    gin.HandlerFunc
}

func NewSubscriptionHandler(service service.SubscriptionService, auth gin.HandlerFunc) *SubscriptionHandler {
	return &SubscriptionHandler{service: service, auth: auth}
}

func (h *SubscriptionHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1", h.auth)
	{
		router.POST("subscribe/concert-info", h.Subscribe)
	}
}

// Subscribe long-poll：請求一直掛著，直到售出比例達到門檻、hub 關閉或客戶端離開
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req model.SubscribeRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	ctx := c.Request.Context()
	handle := notify.NewChanHandle()

	id, err := h.service.Subscribe(ctx, req, handle)
	if err != nil {
		h.handleSubscriptionError(c, err, "Subscribe")
		return
	}

	select {
	case n := <-handle.Notification():
		handleSuccess(c, model.NotificationResponse{AvailableSeats: n.AvailableSeats}, http.StatusOK)
	case <-handle.Cancelled():
		h.handleSubscriptionError(c, apperrors.ErrHubClosed, "Subscribe")
	case <-ctx.Done():
		// 客戶端已離開，不再需要回覆
		h.service.Unsubscribe(id)
		logger.WithComponent("handler").Debug("Subscriber disconnected",
			zap.String("subscription_id", id.String()))
	}
}

func (h *SubscriptionHandler) handleSubscriptionError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrInvalidPerformance):
		log.Warn("Invalid performance")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid performance",
		})
	case errors.Is(err, apperrors.ErrInvalidRequest):
		log.Warn("Invalid subscription request")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid subscription request",
		})
	case errors.Is(err, apperrors.ErrHubClosed):
		log.Info("Notification hub closed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Notification service unavailable",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
