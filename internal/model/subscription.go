package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification 售罄通知內容
type Notification struct {
	SubscriptionID uuid.UUID
	Key            PerformanceKey
	AvailableSeats int
}

// CompletionHandle 單次投遞、可取消的回覆管道
//
// Deliver 最多生效一次；Cancel 之後的 Deliver 不會有任何效果。
type CompletionHandle interface {
	Deliver(n Notification)
	Cancel()
}

// SubscribeRequest 訂閱售罄通知請求
type SubscribeRequest struct {
	ConcertID        int64     `json:"concert_id" binding:"required"`
	Date             time.Time `json:"date" binding:"required"`
	PercentageBooked int       `json:"percentage_booked" binding:"min=0,max=100"`
}

// NotificationResponse 售罄通知響應
type NotificationResponse struct {
	AvailableSeats int `json:"available_seats"`
}
