package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mgregerson/sharebnb/internal/domain"
)

type RentalRepo struct {
	pool *pgxpool.Pool
}

func NewRentalRepo(pool *pgxpool.Pool) *RentalRepo {
	return &RentalRepo{pool: pool}
}

func (r *RentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	query := `
		INSERT INTO rentals (description, location, price, url, owner_username)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	return r.pool.QueryRow(ctx, query,
		rental.Description, rental.Location, rental.Price, rental.URL, rental.OwnerUsername,
	).Scan(&rental.ID)
}

func (r *RentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	query := `
		SELECT id, description, location, price, url, owner_username
		FROM rentals
		WHERE id = $1`

	var rental domain.Rental
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rental.ID, &rental.Description, &rental.Location, &rental.Price, &rental.URL, &rental.OwnerUsername,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

func (r *RentalRepo) ListAll(ctx context.Context) ([]domain.Rental, error) {
	query := `
		SELECT id, description, location, price, url, owner_username
		FROM rentals
		ORDER BY id`
	return r.listRentals(ctx, query)
}

func (r *RentalRepo) ListByOwner(ctx context.Context, username string) ([]domain.Rental, error) {
	query := `
		SELECT id, description, location, price, url, owner_username
		FROM rentals
		WHERE owner_username = $1
		ORDER BY id`
	return r.listRentals(ctx, query, username)
}

func (r *RentalRepo) listRentals(ctx context.Context, query string, args ...any) ([]domain.Rental, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rental domain.Rental
		if err := rows.Scan(&rental.ID, &rental.Description, &rental.Location, &rental.Price, &rental.URL, &rental.OwnerUsername); err != nil {
			return nil, err
		}
		rentals = append(rentals, rental)
	}
	return rentals, rows.Err()
}
