package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Seat 某一場次的座位，Version 用於樂觀鎖
type Seat struct {
	ID       int64           `json:"id" db:"id"`
	Label    string          `json:"label" db:"label"`
	Date     time.Time       `json:"date" db:"date"`
	IsBooked bool            `json:"is_booked" db:"is_booked"`
	Price    decimal.Decimal `json:"price" db:"price"`
	Version  int64           `json:"-" db:"version"`
}

// IsAvailable 檢查座位是否可預訂
func (s *Seat) IsAvailable() bool {
	return !s.IsBooked
}

// SeatClaim 預訂時對單一座位的條件更新：只有版本仍為 ExpectedVersion 才能寫入
type SeatClaim struct {
	SeatID          int64
	ExpectedVersion int64
}

// SeatStatus 查詢座位時的篩選條件
type SeatStatus string

const (
	SeatStatusAny      SeatStatus = "Any"
	SeatStatusBooked   SeatStatus = "Booked"
	SeatStatusUnbooked SeatStatus = "Unbooked"
)

// ParseSeatStatus 空字串視為 Any
func ParseSeatStatus(s string) (SeatStatus, bool) {
	switch SeatStatus(s) {
	case "", SeatStatusAny:
		return SeatStatusAny, true
	case SeatStatusBooked, SeatStatusUnbooked:
		return SeatStatus(s), true
	}
	return "", false
}

// SeatResponse 座位響應
type SeatResponse struct {
	Label    string `json:"label"`
	Price    string `json:"price"`
	IsBooked bool   `json:"is_booked"`
}

func NewSeatResponse(s *Seat) SeatResponse {
	return SeatResponse{
		Label:    s.Label,
		Price:    s.Price.StringFixed(2),
		IsBooked: s.IsBooked,
	}
}
