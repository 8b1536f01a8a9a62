package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking 已完成的預訂，建立後不再變更
type Booking struct {
	ID         int64           `json:"id" db:"id"`
	UserID     int64           `json:"user_id" db:"user_id"`
	ConcertID  int64           `json:"concert_id" db:"concert_id"`
	Date       time.Time       `json:"date" db:"date"`
	Seats      []*Seat         `json:"seats" db:"-"`
	TotalPrice decimal.Decimal `json:"total_price" db:"-"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// SeatLabels 回傳預訂內所有座位的 label
func (b *Booking) SeatLabels() []string {
	labels := make([]string, 0, len(b.Seats))
	for _, s := range b.Seats {
		labels = append(labels, s.Label)
	}
	return labels
}

// TotalOf 座位價格加總
func TotalOf(seats []*Seat) decimal.Decimal {
	total := decimal.Zero
	for _, s := range seats {
		total = total.Add(s.Price)
	}
	return total
}

// CreateBookingRequest 建立預訂請求
type CreateBookingRequest struct {
	ConcertID  int64     `json:"concert_id" binding:"required"`
	Date       time.Time `json:"date" binding:"required"`
	SeatLabels []string  `json:"seat_labels" binding:"required,min=1"`
}

// CreateBookingResponse 建立預訂響應
type CreateBookingResponse struct {
	BookingID int64 `json:"booking_id"`
}

// BookingResponse 預訂響應
type BookingResponse struct {
	ID         int64     `json:"id"`
	ConcertID  int64     `json:"concert_id"`
	Date       time.Time `json:"date"`
	Seats      []string  `json:"seats"`
	TotalPrice string    `json:"total_price"`
}

func NewBookingResponse(b *Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		ConcertID:  b.ConcertID,
		Date:       b.Date,
		Seats:      b.SeatLabels(),
		TotalPrice: b.TotalPrice.StringFixed(2),
	}
}
