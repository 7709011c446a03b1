package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mgregerson/sharebnb/internal/domain"
	"github.com/mgregerson/sharebnb/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
	ErrInvalidCreds  = errors.New("invalid username or password")
)

const DefaultImageURL = "/static/images/default_profile_img.png"

type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
	}
}

type SignupInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
	ImageURL string `json:"image_url"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (string, error) {
	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrUsernameTaken
	}

	existing, err = s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	if input.ImageURL == "" {
		input.ImageURL = DefaultImageURL
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		ImageURL:     &input.ImageURL,
		Bio:          optional(input.Bio),
		Location:     optional(input.Location),
		PasswordHash: string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", fmt.Errorf("creating user: %w", err)
	}

	return s.CreateToken(user.Username)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCreds
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return "", ErrInvalidCreds
	}

	return s.CreateToken(user.Username)
}

// CreateToken signs the claim set the client API expects: just the
// username, no expiry.
func (s *AuthService) CreateToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return signed, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
