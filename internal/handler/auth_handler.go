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

type AuthHandler struct {
	service    service.AuthService
	cookieName string
	ttl        time.Duration
}

func NewAuthHandler(service service.AuthService, cookieName string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{service: service, cookieName: cookieName, ttl: ttl}
}

func (h *AuthHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("login", h.Login)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	token, err := h.service.Login(c, req.Username, req.Password)
	if err != nil {
		log := logger.WithComponent("handler").With(zap.String("operation", "Login"), zap.Error(err))
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			log.Info("Invalid credentials")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid username or password",
			})
			return
		}
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, int(h.ttl.Seconds()), "/", "", false, true)
	c.Status(http.StatusOK)
}
