package service_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mgregerson/sharebnb/internal/repository/repositorytest"
	"github.com/mgregerson/sharebnb/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signupInput() service.SignupInput {
	return service.SignupInput{
		Username: "john_doe",
		Password: "password123",
		Email:    "john@example.com",
		Location: "Oakland",
		Bio:      "surfer",
	}
}

func TestSignupIssuesUsernameToken(t *testing.T) {
	users := repositorytest.NewFakeUserRepo()
	svc := service.NewAuthService(users, testSecret)

	token, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "john_doe", claims["username"])
}

func TestSignupDefaultsProfileImage(t *testing.T) {
	users := repositorytest.NewFakeUserRepo()
	svc := service.NewAuthService(users, testSecret)

	_, err := svc.Signup(context.Background(), signupInput())
	require.NoError(t, err)

	user, err := users.GetByUsername(context.Background(), "john_doe")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, user.ImageURL)
	assert.Equal(t, service.DefaultImageURL, *user.ImageURL)
}

func TestSignupDuplicateUsername(t *testing.T) {
	users := repositorytest.NewFakeUserRepo()
	svc := service.NewAuthService(users, testSecret)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	dup := signupInput()
	dup.Email = "other@example.com"
	_, err = svc.Signup(ctx, dup)
	assert.ErrorIs(t, err, service.ErrUsernameTaken)
}

func TestSignupDuplicateEmail(t *testing.T) {
	users := repositorytest.NewFakeUserRepo()
	svc := service.NewAuthService(users, testSecret)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	dup := signupInput()
	dup.Username = "jane_doe"
	_, err = svc.Signup(ctx, dup)
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestLoginRoundTrip(t *testing.T) {
	users := repositorytest.NewFakeUserRepo()
	svc := service.NewAuthService(users, testSecret)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	token, err := svc.Login(ctx, service.LoginInput{Username: "john_doe", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginWrongPassword(t *testing.T) {
	users := repositorytest.NewFakeUserRepo()
	svc := service.NewAuthService(users, testSecret)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput())
	require.NoError(t, err)

	_, err = svc.Login(ctx, service.LoginInput{Username: "john_doe", Password: "wrong"})
	assert.ErrorIs(t, err, service.ErrInvalidCreds)
}

func TestLoginUnknownUser(t *testing.T) {
	users := repositorytest.NewFakeUserRepo()
	svc := service.NewAuthService(users, testSecret)

	_, err := svc.Login(context.Background(), service.LoginInput{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, service.ErrInvalidCreds)
}
