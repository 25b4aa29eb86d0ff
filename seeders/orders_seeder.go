package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"production-tracking/internal/domain"
	"production-tracking/internal/entities"
)

func seedSampleOrder(ctx context.Context, db *pgxpool.Pool) error {
	const orderNumber = "ORD-DEMO-001"

	var existingID string
	err := db.QueryRow(ctx, "SELECT id FROM orders WHERE order_number = $1", orderNumber).Scan(&existingID)
	if err == nil {
		log.Printf("    - Заказ '%s' уже существует. Пропускаем.", orderNumber)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("ошибка при проверке заказа '%s': %w", orderNumber, err)
	}

	var managerID string
	err = db.QueryRow(ctx, "SELECT id FROM users WHERE role = 'manager' ORDER BY created_at LIMIT 1").Scan(&managerID)
	if err != nil {
		return fmt.Errorf("не найден менеджер для демо-заказа: %w", err)
	}

	orderID := uuid.NewString()
	_, err = db.Exec(ctx, `
		INSERT INTO orders (id, order_number, client_name, description, quantity, market_type,
			material_cost, processing_time_per_unit, minute_rate_domestic, minute_rate_foreign,
			processing_types, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		orderID, orderNumber, "ООО «Механика»", "Вал приводной, сталь 40Х", 100, entities.MarketDomestic,
		15000.0, 45.0, domain.DefaultMinuteRateDomestic, domain.DefaultMinuteRateForeign,
		[]string{string(entities.ProcessingTurning), string(entities.ProcessingMilling)}, managerID,
	)
	if err != nil {
		return fmt.Errorf("не удалось создать демо-заказ: %w", err)
	}

	for i, template := range domain.DefaultPipeline() {
		var completedUnits interface{}
		if template.HasUnits {
			completedUnits = 0
		}
		_, err = db.Exec(ctx, `
			INSERT INTO stages (id, order_id, name, stage_order, status, percentage, completed_units)
			VALUES ($1, $2, $3, $4, 'pending', 0, $5)`,
			uuid.NewString(), orderID, template.Name, i+1, completedUnits,
		)
		if err != nil {
			return fmt.Errorf("не удалось создать этап «%s» демо-заказа: %w", template.Name, err)
		}
	}

	log.Printf("    - Создан демо-заказ '%s' с конвейером из %d этапов", orderNumber, domain.PipelineLength)
	return nil
}
