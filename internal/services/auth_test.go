package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"production-tracking/internal/dto"
	"production-tracking/internal/entities"
	apperrors "production-tracking/pkg/errors"
	"production-tracking/pkg/service"
)

type stubUserRepo struct {
	users map[string]*entities.User
}

func newStubUserRepo(users ...*entities.User) *stubUserRepo {
	repo := &stubUserRepo{users: make(map[string]*entities.User)}
	for _, u := range users {
		repo.users[u.Username] = u
	}
	return repo
}

func (r *stubUserRepo) CreateUser(_ context.Context, user entities.User) (*entities.User, error) {
	user.CreatedAt = time.Now()
	r.users[user.Username] = &user
	return &user, nil
}

func (r *stubUserRepo) FindUserByID(_ context.Context, id string) (*entities.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *stubUserRepo) FindUserByUsername(_ context.Context, username string) (*entities.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func testUser(t *testing.T, username, password string, role entities.UserRole) *entities.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entities.User{
		ID:           "user-" + username,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
}

func newTestAuthService(repo *stubUserRepo) *AuthService {
	jwtSvc := service.NewJWTService("test-secret", time.Hour, time.Hour*24)
	return NewAuthService(repo, jwtSvc, testLogger())
}

func TestLogin_Success(t *testing.T) {
	repo := newStubUserRepo(testUser(t, "director", "director123", entities.RoleManager))
	svc := newTestAuthService(repo)

	res, err := svc.Login(context.Background(), dto.LoginDTO{Username: "director", Password: "director123"})
	require.NoError(t, err)

	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.NotEqual(t, res.AccessToken, res.RefreshToken)
	assert.Equal(t, "manager", res.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubUserRepo(testUser(t, "director", "director123", entities.RoleManager))
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), dto.LoginDTO{Username: "director", Password: "wrong"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	_, err := svc.Login(context.Background(), dto.LoginDTO{Username: "ghost", Password: "x"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCredentials),
		"Неизвестный пользователь и неверный пароль дают одинаковую ошибку")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo(testUser(t, "director", "director123", entities.RoleManager))
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), dto.RegisterDTO{
		Username: "director", Password: "another", Role: "employee",
	})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 409, httpErr.Code)
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	res, err := svc.Register(context.Background(), dto.RegisterDTO{
		Username: "worker", Password: "worker123", Role: "employee",
	})
	require.NoError(t, err)
	assert.Equal(t, "employee", res.Role)

	stored := repo.users["worker"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "worker123", stored.PasswordHash, "Пароль не должен храниться открытым текстом")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("worker123")))
}

func TestMe_ReturnsProfile(t *testing.T) {
	user := testUser(t, "director", "director123", entities.RoleManager)
	svc := newTestAuthService(newStubUserRepo(user))

	res, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "director", res.Username)
}
