package service

import (
	"concert-booking/internal/model"
	apperrors "concert-booking/pkg/app_errors"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// fakeStore 以記憶體實作座位、預訂與目錄，行為與 Postgres 版本相同的版本檢查
type fakeStore struct {
	mu       sync.Mutex
	seats    map[int64]*model.Seat
	bookings map[int64]*model.Booking
	dates    map[int64][]time.Time
	nextSeat int64
	nextID   int64

	// 前 n 次寫入直接回報版本衝突
	forcedConflicts int
	commits         int
	countErr        error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		seats:    make(map[int64]*model.Seat),
		bookings: make(map[int64]*model.Booking),
		dates:    make(map[int64][]time.Time),
	}
}

func (f *fakeStore) addPerformance(concertID int64, date time.Time, price string, labels ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.dates[concertID] = append(f.dates[concertID], date)
	for _, l := range labels {
		f.nextSeat++
		f.seats[f.nextSeat] = &model.Seat{
			ID:    f.nextSeat,
			Label: l,
			Date:  date,
			Price: decimal.RequireFromString(price),
		}
	}
}

func (f *fakeStore) bookedLabels(date time.Time) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, 0)
	for _, s := range f.seats {
		if s.Date.Equal(date) && s.IsBooked {
			out = append(out, s.Label)
		}
	}
	sort.Strings(out)
	return out
}

func (f *fakeStore) allBookings() []*model.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*model.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out
}

// SeatRepository

func (f *fakeStore) FindByDateAndLabels(ctx context.Context, date time.Time, labels []string) ([]*model.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	want := make(map[string]bool, len(labels))
	for _, l := range labels {
		want[l] = true
	}

	out := make([]*model.Seat, 0, len(labels))
	for _, s := range f.seats {
		if s.Date.Equal(date) && want[s.Label] {
			seat := *s
			out = append(out, &seat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) FindByDate(ctx context.Context, date time.Time, status model.SeatStatus) ([]*model.Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*model.Seat, 0)
	for _, s := range f.seats {
		if !s.Date.Equal(date) {
			continue
		}
		if status != model.SeatStatusAny && s.IsBooked != (status == model.SeatStatusBooked) {
			continue
		}
		seat := *s
		out = append(out, &seat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func (f *fakeStore) CountAvailability(ctx context.Context, date time.Time) (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.countErr != nil {
		return 0, 0, f.countErr
	}

	available, total := 0, 0
	for _, s := range f.seats {
		if !s.Date.Equal(date) {
			continue
		}
		total++
		if !s.IsBooked {
			available++
		}
	}
	return available, total, nil
}

func (f *fakeStore) MarkBookedWithVersion(ctx context.Context, tx pgx.Tx, seatID int64, expectedVersion int64) error {
	return errors.New("fakeStore applies claims in ConditionalBookAndPersist")
}

// Ledger

func (f *fakeStore) ConditionalBookAndPersist(ctx context.Context, booking *model.Booking, claims []model.SeatClaim) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.forcedConflicts > 0 {
		f.forcedConflicts--
		return nil, apperrors.ErrVersionConflict
	}

	for _, c := range claims {
		s, ok := f.seats[c.SeatID]
		if !ok || s.IsBooked || s.Version != c.ExpectedVersion {
			return nil, apperrors.ErrVersionConflict
		}
	}
	for _, c := range claims {
		s := f.seats[c.SeatID]
		s.IsBooked = true
		s.Version++
	}

	f.nextID++
	f.commits++
	created := *booking
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	f.bookings[created.ID] = &created

	return &created, nil
}

// BookingRepository

func (f *fakeStore) FindByID(ctx context.Context, id int64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return nil, apperrors.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeStore) FindByUserID(ctx context.Context, userID int64) ([]*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*model.Booking, 0)
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error) {
	return nil, errors.New("fakeStore creates bookings in ConditionalBookAndPersist")
}

// ConcertRepository

func (f *fakeStore) ListDates(ctx context.Context, concertID int64) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	dates, ok := f.dates[concertID]
	if !ok {
		return nil, apperrors.ErrConcertNotFound
	}
	return dates, nil
}
