package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mgregerson/sharebnb/internal/domain"
)

type ReservationRepo struct {
	pool *pgxpool.Pool
}

func NewReservationRepo(pool *pgxpool.Pool) *ReservationRepo {
	return &ReservationRepo{pool: pool}
}

// Create inserts the reservation and, when it carries a rating, the rating
// row in the same transaction so a failed commit leaves neither behind.
func (r *ReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO reservations (start_date, end_date, rating, rental_id, renter)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err = tx.QueryRow(ctx, query,
		reservation.StartDate, reservation.EndDate, reservation.Rating,
		reservation.RentalID, reservation.Renter,
	).Scan(&reservation.ID)
	if err != nil {
		return err
	}

	if reservation.Rating != nil {
		_, err = tx.Exec(ctx,
			`INSERT INTO ratings (rating, rental_id) VALUES ($1, $2)`,
			*reservation.Rating, reservation.RentalID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *ReservationRepo) GetByRenterAndID(ctx context.Context, renter string, id int64) (*domain.Reservation, error) {
	query := `
		SELECT id, start_date, end_date, rating, rental_id, renter
		FROM reservations
		WHERE renter = $1 AND id = $2`

	var res domain.Reservation
	err := r.pool.QueryRow(ctx, query, renter, id).Scan(
		&res.ID, &res.StartDate, &res.EndDate, &res.Rating, &res.RentalID, &res.Renter,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepo) ListByRenter(ctx context.Context, renter string) ([]domain.Reservation, error) {
	query := `
		SELECT id, start_date, end_date, rating, rental_id, renter
		FROM reservations
		WHERE renter = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, renter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(&res.ID, &res.StartDate, &res.EndDate, &res.Rating, &res.RentalID, &res.Renter); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}
