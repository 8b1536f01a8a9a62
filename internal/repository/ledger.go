package repository

import (
	"concert-booking/internal/model"
	apperrors "concert-booking/pkg/app_errors"
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ledger 座位狀態與預訂紀錄的原子寫入
type Ledger interface {
	// 依版本條件更新所有座位並建立預訂，全部成功或全部不生效
	// 任一座位版本不符回傳 ErrVersionConflict
	ConditionalBookAndPersist(ctx context.Context, booking *model.Booking, claims []model.SeatClaim) (*model.Booking, error)
}

type LedgerImpl struct {
	pool     *pgxpool.Pool
	seats    SeatRepository
	bookings BookingRepository
}

func NewLedger(pool *pgxpool.Pool, seats SeatRepository, bookings BookingRepository) Ledger {
	return &LedgerImpl{
		pool:     pool,
		seats:    seats,
		bookings: bookings,
	}
}

func (l *LedgerImpl) ConditionalBookAndPersist(ctx context.Context, booking *model.Booking, claims []model.SeatClaim) (*model.Booking, error) {
	tx, err := l.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 固定以 seat id 遞增順序上鎖，避免兩筆重疊的預訂互相等待造成 deadlock
	ordered := make([]model.SeatClaim, len(claims))
	copy(ordered, claims)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].SeatID < ordered[j].SeatID })

	for _, c := range ordered {
		if err := l.seats.MarkBookedWithVersion(ctx, tx, c.SeatID, c.ExpectedVersion); err != nil {
			return nil, err
		}
	}

	created, err := l.bookings.Create(ctx, tx, booking)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, translateConflict(err)
	}

	return created, nil
}

// translateConflict 把 Postgres 的並發衝突錯誤統一成 ErrVersionConflict
func translateConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "23505": // serialization_failure, deadlock_detected, unique_violation
			return apperrors.ErrVersionConflict
		}
	}
	return err
}
