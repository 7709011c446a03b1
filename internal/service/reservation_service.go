package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mgregerson/sharebnb/internal/domain"
	"github.com/mgregerson/sharebnb/internal/repository"
)

var ErrRentalNotFound = errors.New("rental not found")

type ReservationService struct {
	reservationRepo repository.ReservationRepository
	rentalRepo      repository.RentalRepository
	userRepo        repository.UserRepository
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	rentalRepo repository.RentalRepository,
	userRepo repository.UserRepository,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		rentalRepo:      rentalRepo,
		userRepo:        userRepo,
	}
}

type AddReservationInput struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	RentalID  int64  `json:"rental_id"`
	Rating    *int   `json:"rating"`
}

func (s *ReservationService) AddReservation(ctx context.Context, renter string, input AddReservationInput) (*domain.Reservation, error) {
	user, err := s.userRepo.GetByUsername(ctx, renter)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	rental, err := s.rentalRepo.GetByID(ctx, input.RentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, ErrRentalNotFound
	}

	reservation := &domain.Reservation{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Rating:    input.Rating,
		RentalID:  input.RentalID,
		Renter:    renter,
	}
	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("creating reservation: %w", err)
	}
	return reservation, nil
}

func (s *ReservationService) ListUserReservations(ctx context.Context, renter string) ([]domain.Reservation, error) {
	user, err := s.userRepo.GetByUsername(ctx, renter)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	reservations, err := s.reservationRepo.ListByRenter(ctx, renter)
	if err != nil {
		return nil, err
	}
	if reservations == nil {
		reservations = []domain.Reservation{}
	}
	return reservations, nil
}

// GetUserReservation returns nil, nil when the renter has no reservation
// with that id; the handler answers with a null body.
func (s *ReservationService) GetUserReservation(ctx context.Context, renter string, id int64) (*domain.Reservation, error) {
	return s.reservationRepo.GetByRenterAndID(ctx, renter, id)
}
