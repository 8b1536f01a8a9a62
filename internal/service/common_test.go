package service

import (
	"concert-booking/config"
	"fmt"
	"time"
)

var testDate = time.Date(2025, 9, 20, 19, 30, 0, 0, time.UTC)

func testBookingConfig() config.BookingConfig {
	return config.LoadTestConfig().Booking
}

// seatLabels 產生 A01, A02 ... 的座位 label
func seatLabels(row string, n int) []string {
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, fmt.Sprintf("%s%02d", row, i))
	}
	return out
}
