package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDemoUsers создаёт аккаунты менеджера и сотрудника для первого входа.
func SeedDemoUsers(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск создания демо-пользователей...")

	if err := seedUsers(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка создания демо-пользователей: %v", err)
	}

	log.Println("✅ Демо-пользователи готовы!")
}

// SeedDemoOrders создаёт образцовый заказ с полным конвейером этапов.
func SeedDemoOrders(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск создания демо-заказов...")

	if err := seedSampleOrder(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка создания демо-заказа: %v", err)
	}

	log.Println("✅ Демо-заказы готовы!")
}
