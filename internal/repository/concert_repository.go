package repository

import (
	apperrors "concert-booking/pkg/app_errors"
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConcertRepository 目錄查詢：只提供預訂與訂閱需要的場次資訊
type ConcertRepository interface {
	// 取得演唱會所有場次日期，演唱會不存在回傳 ErrConcertNotFound
	ListDates(ctx context.Context, concertID int64) ([]time.Time, error)
}

type ConcertRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewConcertRepository(pool *pgxpool.Pool) ConcertRepository {
	return &ConcertRepositoryImpl{
		pool: pool,
	}
}

func (r *ConcertRepositoryImpl) ListDates(ctx context.Context, concertID int64) ([]time.Time, error) {
	query := `
		SELECT c.id, d.date
		FROM concerts c
		LEFT JOIN concert_dates d ON d.concert_id = c.id
		WHERE c.id = $1
		ORDER BY d.date
	`

	rows, err := r.pool.Query(ctx, query, concertID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := false
	dates := make([]time.Time, 0)
	for rows.Next() {
		var (
			id   int64
			date *time.Time
		)
		if err := rows.Scan(&id, &date); err != nil {
			return nil, err
		}
		found = true
		if date != nil {
			dates = append(dates, *date)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, apperrors.ErrConcertNotFound
	}

	return dates, nil
}
