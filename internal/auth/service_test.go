package auth

import (
	"context"
	"testing"
	"time"

	"skybook/internal/shared/config"
	"skybook/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateUser(ctx context.Context, user *users.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockRepository) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *mockRepository) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *mockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

var _ Repository = (*mockRepository)(nil)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
}

func testUser(password string) *users.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &users.User{
		ID:       uuid.New(),
		Name:     "Asha Nair",
		Email:    "asha@skybook.dev",
		Password: string(hashed),
		Role:     users.RoleUser,
	}
}

func TestService_RegisterIssuesTokens(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testConfig())

	repo.On("EmailExists", mock.Anything, "asha@skybook.dev").Return(false, nil)
	repo.On("CreateUser", mock.Anything, mock.AnythingOfType("*users.User")).Return(nil)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Asha Nair",
		Email:    "asha@skybook.dev",
		Password: "qwerty123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, string(users.RoleUser), resp.User.Role)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, "asha@skybook.dev", claims.Email)
}

func TestService_RegisterDuplicateEmail(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testConfig())

	repo.On("EmailExists", mock.Anything, "asha@skybook.dev").Return(true, nil)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Asha Nair",
		Email:    "asha@skybook.dev",
		Password: "qwerty123",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	repo.AssertNotCalled(t, "CreateUser")
}

func TestService_Login(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testConfig())
	user := testUser("qwerty123")

	repo.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    user.Email,
		Password: "qwerty123",
	})
	require.NoError(t, err)
	assert.Equal(t, user.Email, resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestService_LoginWrongPassword(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testConfig())
	user := testUser("qwerty123")

	repo.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    user.Email,
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_LoginUnknownUser(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testConfig())

	repo.On("GetUserByEmail", mock.Anything, "nobody@skybook.dev").Return(nil, ErrUserNotFound)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@skybook.dev",
		Password: "qwerty123",
	})
	// Unknown user and wrong password are indistinguishable to the caller.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_RefreshToken(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo, testConfig())
	user := testUser("qwerty123")

	repo.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("GetUserByID", mock.Anything, user.ID.String()).Return(user, nil)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    user.Email,
		Password: "qwerty123",
	})
	require.NoError(t, err)

	pair, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	// An access token cannot be used as a refresh token.
	_, err = svc.RefreshToken(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_ValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewService(new(mockRepository), testConfig())

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
