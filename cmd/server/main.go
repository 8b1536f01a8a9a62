package main

import (
	"concert-booking/config"
	"concert-booking/internal/cache"
	"concert-booking/internal/database"
	"concert-booking/internal/handler"
	"concert-booking/internal/notify"
	"concert-booking/internal/queue"
	"concert-booking/internal/repository"
	"concert-booking/internal/service"
	"concert-booking/internal/worker"
	"concert-booking/pkg/logger"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	log := logger.WithComponent("server")
	defer logger.L.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.InitDatabase(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	rdb, err := database.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	defer rdb.Close()

	// repository
	seatRepository := repository.NewSeatRepository(pool)
	bookingRepository := repository.NewBookingRepository(pool)
	concertRepository := repository.NewConcertRepository(pool)
	userRepository := repository.NewUserRepository(pool)
	ledger := repository.NewLedger(pool, seatRepository, bookingRepository)

	// 通知：hub → queue → worker
	notificationQueue := queue.NewNotificationQueue(cfg.Notification.QueueBuffer)
	hub := notify.NewNotificationHub(notificationQueue)
	notificationWorker := worker.NewNotificationWorker(notificationQueue, cfg.Notification.Workers)
	if err := notificationWorker.Start(ctx); err != nil {
		log.Fatal("Failed to start notification worker", zap.Error(err))
	}

	// service
	engine := service.NewSeatBookingEngine(seatRepository, ledger, cfg.Booking)
	accountant := service.NewAvailabilityAccountant(seatRepository)
	bookingService := service.NewBookingService(engine, accountant, hub, concertRepository, bookingRepository)
	subscriptionService := service.NewSubscriptionService(hub, concertRepository)
	seatService := service.NewSeatService(seatRepository)
	sessions := cache.NewRedisSessionStore(rdb, cfg.Session.KeyPrefix, cfg.Session.TTL)
	authService := service.NewAuthService(userRepository, sessions)

	// handler
	auth := handler.RequireSession(sessions, cfg.Session.CookieName)

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handler.NewBookingHandler(bookingService, auth).RegisterRoutes(router)
	handler.NewSubscriptionHandler(subscriptionService, auth).RegisterRoutes(router)
	handler.NewSeatHandler(seatService).RegisterRoutes(router)
	handler.NewAuthHandler(authService, cfg.Session.CookieName, cfg.Session.TTL).RegisterRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	// 先關 hub：等待中的 long-poll 會收到 503，Shutdown 才不會卡住
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}

	notificationQueue.Close()
	notificationWorker.Wait()
	log.Info("Server exited")
}
