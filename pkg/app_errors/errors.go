package apperrors

import "errors"

var (
	// 預訂
	ErrInvalidRequest   = errors.New("invalid request")
	ErrSeatsUnavailable = errors.New("seats unavailable")
	ErrConflict         = errors.New("booking conflict, retry later")
	ErrVersionConflict  = errors.New("seat version conflict")
	ErrTransientRead    = errors.New("transient read error")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrBookingForbidden = errors.New("booking belongs to another user")

	// 目錄 / 認證
	ErrConcertNotFound    = errors.New("concert not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// 通知
	ErrInvalidPerformance   = errors.New("invalid performance")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrHubClosed            = errors.New("notification hub closed")
	ErrQueueClosed          = errors.New("notification queue closed")
	ErrQueueFull            = errors.New("notification queue full")

	ErrInternalServerError = errors.New("internal server error")
)
