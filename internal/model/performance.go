package model

import (
	"fmt"
	"time"
)

// PerformanceKey 一場演出 (concert + date)，座位競爭與訂閱比對都以此為單位
type PerformanceKey struct {
	ConcertID int64
	Date      time.Time
}

func NewPerformanceKey(concertID int64, date time.Time) PerformanceKey {
	// 統一成 UTC，避免同一時間點因時區不同而變成兩個 key
	return PerformanceKey{ConcertID: concertID, Date: date.UTC()}
}

func (k PerformanceKey) String() string {
	return fmt.Sprintf("%d@%s", k.ConcertID, k.Date.Format(time.RFC3339))
}
