package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/beauty-store/internal/config"
	"github.com/your-org/beauty-store/internal/pkg/apperrors"
	"github.com/your-org/beauty-store/internal/pkg/auth"
)

type memoryRepo struct {
	mu    sync.Mutex
	users map[string]User
}

func (r *memoryRepo) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return apperrors.ErrAlreadyExists
		}
	}
	r.users[u.ID] = *u
	return nil
}

func (r *memoryRepo) FindByID(_ context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *memoryRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memoryRepo) UpdateWishlist(_ context.Context, id string, wishlist []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Wishlist = append([]string{}, wishlist...)
	r.users[id] = u
	return nil
}

func (r *memoryRepo) Count(context.Context) (int64, error) { return int64(len(r.users)), nil }

func (r *memoryRepo) DeleteAll(context.Context) error {
	r.users = map[string]User{}
	return nil
}

func newTestService() (*Service, *auth.JWTManager) {
	cfg := &config.Config{
		App:      config.AppConfig{Name: "Beauty Store"},
		JWT:      config.JWTConfig{Secret: "test-secret-that-is-long-enough-for-hs256", Expiry: time.Hour},
		Security: config.SecurityConfig{BcryptCost: 4, MinPasswordLength: 6},
	}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	tokens := auth.NewJWTManager(cfg)
	return NewService(&memoryRepo{users: map[string]User{}}, auth.NewPasswordManager(cfg), tokens, logger), tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc, tokens := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{Name: " Asha ", Email: "Asha@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Asha", resp.User.Name)
	assert.Equal(t, "asha@example.com", resp.User.Email)
	assert.Equal(t, RoleUser, resp.User.Role)

	claims, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, RoleUser, claims.Role)

	login, err := svc.Login(ctx, &LoginRequest{Email: "ASHA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegister_Rejections(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &RegisterRequest{Name: "A", Email: "A@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.Equal(t, "User already exists", apperrors.Message(err))

	_, err = svc.Register(ctx, &RegisterRequest{Name: "B", Email: "b@example.com", Password: "123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Equal(t, "Password must be at least 6 characters long", apperrors.Message(err))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	_, err := svc.Register(ctx, &RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	for _, req := range []LoginRequest{
		{Email: "a@example.com", Password: "wrong-pass"},
		{Email: "nobody@example.com", Password: "secret1"},
	} {
		_, err := svc.Login(ctx, &req)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Equal(t, "Invalid credentials", apperrors.Message(err))
	}
}

func TestCreateAdmin(t *testing.T) {
	svc, _ := newTestService()
	admin, err := svc.CreateAdmin(context.Background(), "Admin", "Admin@Beauty.com", "admin123")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, "admin@beauty.com", admin.Email)

	resp, err := svc.Login(context.Background(), &LoginRequest{Email: "admin@beauty.com", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, resp.User.Role)
}

func TestGetProfile_DeletedUser(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Equal(t, "Token is not valid", apperrors.Message(err))
}

func TestWishlist(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	resp, err := svc.Register(ctx, &RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)
	id := resp.User.ID

	list, err := svc.GetWishlist(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.AddToWishlist(ctx, id, "p1")
	require.NoError(t, err)
	_, err = svc.AddToWishlist(ctx, id, "p2")
	require.NoError(t, err)
	list, err = svc.AddToWishlist(ctx, id, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, list)

	list, err = svc.RemoveFromWishlist(ctx, id, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, list)

	list, err = svc.RemoveFromWishlist(ctx, id, "missing")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, list)

	stored, err := svc.GetWishlist(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, stored)
}
