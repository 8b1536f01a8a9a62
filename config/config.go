package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Booking      BookingConfig
	Notification NotificationConfig
	Session      SessionConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// BookingConfig 樂觀鎖衝突時的重試設定
type BookingConfig struct {
	MaxAttempts    int           // 含第一次嘗試
	InitialBackoff time.Duration // 第一次重試前的等待
	MaxBackoff     time.Duration
	Jitter         float64 // 0~1，等待時間的隨機幅度
}

// NotificationConfig 售罄通知的投遞設定
type NotificationConfig struct {
	QueueBuffer int
	Workers     int
}

// SessionConfig 登入 cookie 與 Redis session 設定
type SessionConfig struct {
	CookieName string
	KeyPrefix  string
	TTL        time.Duration
}

var AppConfig *Config

func LoadConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	AppConfig = &Config{
		Server: ServerConfig{
			Port:            v.GetString("APP_PORT"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Booking: BookingConfig{
			MaxAttempts:    v.GetInt("BOOKING_MAX_ATTEMPTS"),
			InitialBackoff: v.GetDuration("BOOKING_INITIAL_BACKOFF"),
			MaxBackoff:     v.GetDuration("BOOKING_MAX_BACKOFF"),
			Jitter:         v.GetFloat64("BOOKING_BACKOFF_JITTER"),
		},
		Notification: NotificationConfig{
			QueueBuffer: v.GetInt("NOTIFICATION_QUEUE_BUFFER"),
			Workers:     v.GetInt("NOTIFICATION_WORKERS"),
		},
		Session: SessionConfig{
			CookieName: v.GetString("SESSION_COOKIE_NAME"),
			KeyPrefix:  v.GetString("SESSION_KEY_PREFIX"),
			TTL:        v.GetDuration("SESSION_TTL"),
		},
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8081",
			ShutdownTimeout: time.Second,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5433", // 測試 DB 用 5433 port
			User:     "postgres",
			Password: "postgres",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     "6380", // 測試 Redis 用 6380 port
			Password: "",
			DB:       1,
		},
		Booking: BookingConfig{
			MaxAttempts:    5,
			InitialBackoff: time.Millisecond,
			MaxBackoff:     5 * time.Millisecond,
			Jitter:         0.5,
		},
		Notification: NotificationConfig{
			QueueBuffer: 16,
			Workers:     2,
		},
		Session: SessionConfig{
			CookieName: "auth",
			KeyPrefix:  "session:",
			TTL:        time.Hour,
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("BOOKING_MAX_ATTEMPTS", 5)
	v.SetDefault("BOOKING_INITIAL_BACKOFF", 5*time.Millisecond)
	v.SetDefault("BOOKING_MAX_BACKOFF", 100*time.Millisecond)
	v.SetDefault("BOOKING_BACKOFF_JITTER", 0.5)

	v.SetDefault("NOTIFICATION_QUEUE_BUFFER", 1024)
	v.SetDefault("NOTIFICATION_WORKERS", 4)

	v.SetDefault("SESSION_COOKIE_NAME", "auth")
	v.SetDefault("SESSION_KEY_PREFIX", "session:")
	v.SetDefault("SESSION_TTL", 24*time.Hour)
}
