package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"production-tracking/internal/entities"
	apperrors "production-tracking/pkg/errors"
)

const usersTable = "users"

type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user entities.User) (*entities.User, error)
	FindUserByID(ctx context.Context, id string) (*entities.User, error)
	FindUserByUsername(ctx context.Context, username string) (*entities.User, error)
}

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

type dbUser struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

func (u dbUser) ToEntity() *entities.User {
	return &entities.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         entities.UserRole(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

func (r *UserRepository) CreateUser(ctx context.Context, user entities.User) (*entities.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, username, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, password_hash, role, created_at`, usersTable)

	var created dbUser
	err := r.db.QueryRow(ctx, query, user.ID, user.Username, user.PasswordHash, user.Role).
		Scan(&created.ID, &created.Username, &created.PasswordHash, &created.Role, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать пользователя: %w", err)
	}

	return created.ToEntity(), nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, id string) (*entities.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, password_hash, role, created_at
		FROM %s WHERE id = $1`, usersTable)

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, password_hash, role, created_at
		FROM %s WHERE username = $1`, usersTable)

	return r.scanOne(r.db.QueryRow(ctx, query, username))
}

func (r *UserRepository) scanOne(row pgx.Row) (*entities.User, error) {
	var u dbUser
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("не удалось получить пользователя: %w", err)
	}
	return u.ToEntity(), nil
}
