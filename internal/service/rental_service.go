package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mgregerson/sharebnb/internal/domain"
	"github.com/mgregerson/sharebnb/internal/repository"
	"github.com/mgregerson/sharebnb/internal/storage"
)

var ErrBadPhoto = errors.New("rental photo could not be decoded")

type RentalService struct {
	rentalRepo repository.RentalRepository
	userRepo   repository.UserRepository
	photos     storage.BlobStore
}

func NewRentalService(rentalRepo repository.RentalRepository, userRepo repository.UserRepository, photos storage.BlobStore) *RentalService {
	return &RentalService{
		rentalRepo: rentalRepo,
		userRepo:   userRepo,
		photos:     photos,
	}
}

type RentalPhotoInput struct {
	URL   string `json:"url"`
	Bytes string `json:"bytes"`
}

type RentalDataInput struct {
	Description string `json:"description"`
	Location    string `json:"location"`
	Price       string `json:"price"`
	URL         string `json:"url"`
}

type AddRentalInput struct {
	RentalPhotos RentalPhotoInput `json:"rentalPhotos"`
	RentalData   RentalDataInput  `json:"rentalData"`
}

// AddRental uploads the listing photo and persists the rental. The upload
// happens first; if it fails nothing is persisted.
func (s *RentalService) AddRental(ctx context.Context, owner string, price int, input AddRentalInput) (*domain.Rental, error) {
	user, err := s.userRepo.GetByUsername(ctx, owner)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	data, contentType, err := storage.DecodePhoto(input.RentalPhotos.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPhoto, err)
	}

	key := storage.ObjectKey(input.RentalPhotos.URL)
	if err := s.photos.Upload(ctx, key, contentType, data); err != nil {
		return nil, fmt.Errorf("uploading photo: %w", err)
	}

	rental := &domain.Rental{
		Description:   input.RentalData.Description,
		Location:      input.RentalData.Location,
		Price:         price,
		URL:           optional(input.RentalData.URL),
		OwnerUsername: owner,
	}
	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return nil, fmt.Errorf("creating rental: %w", err)
	}
	return rental, nil
}

func (s *RentalService) ListRentals(ctx context.Context) ([]domain.Rental, error) {
	rentals, err := s.rentalRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if rentals == nil {
		rentals = []domain.Rental{}
	}
	return rentals, nil
}

func (s *RentalService) ListUserRentals(ctx context.Context, username string) ([]domain.Rental, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	rentals, err := s.rentalRepo.ListByOwner(ctx, username)
	if err != nil {
		return nil, err
	}
	if rentals == nil {
		rentals = []domain.Rental{}
	}
	return rentals, nil
}

// GetRental returns nil, nil for an unknown id; the read path answers that
// with a null body rather than a 404.
func (s *RentalService) GetRental(ctx context.Context, id int64) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, id)
}

// UserProfile returns a user together with all rentals they own.
func (s *RentalService) UserProfile(ctx context.Context, username string) (*domain.User, []domain.Rental, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	rentals, err := s.rentalRepo.ListByOwner(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if rentals == nil {
		rentals = []domain.Rental{}
	}
	return user, rentals, nil
}
