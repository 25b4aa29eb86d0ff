package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"production-tracking/internal/entities"
)

type demoUser struct {
	Username string
	Password string
	Role     entities.UserRole
}

// Демо-аккаунты для первого входа. Пароли меняются в бою, это стенд.
var demoUsers = []demoUser{
	{Username: "director", Password: "director123", Role: entities.RoleManager},
	{Username: "worker", Password: "worker123", Role: entities.RoleEmployee},
}

func seedUsers(ctx context.Context, db *pgxpool.Pool) error {
	for _, u := range demoUsers {
		var existingID string
		err := db.QueryRow(ctx, "SELECT id FROM users WHERE username = $1", u.Username).Scan(&existingID)
		if err == nil {
			log.Printf("    - Пользователь '%s' уже существует. Пропускаем.", u.Username)
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("ошибка при проверке пользователя '%s': %w", u.Username, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("не удалось захэшировать пароль '%s': %w", u.Username, err)
		}

		_, err = db.Exec(ctx,
			"INSERT INTO users (id, username, password_hash, role) VALUES ($1, $2, $3, $4)",
			uuid.NewString(), u.Username, string(hash), u.Role,
		)
		if err != nil {
			return fmt.Errorf("не удалось создать пользователя '%s': %w", u.Username, err)
		}

		log.Printf("    - Создан пользователь '%s' (%s)", u.Username, u.Role)
	}

	return nil
}
