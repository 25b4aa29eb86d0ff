package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"production-tracking/internal/entities"
	apperrors "production-tracking/pkg/errors"
)

type StageRepositoryInterface interface {
	UpdateStage(ctx context.Context, q Querier, stage entities.Stage) error
	UpdateStages(ctx context.Context, q Querier, stages []entities.Stage) error
}

type StageRepository struct {
	db *pgxpool.Pool
}

func NewStageRepository(db *pgxpool.Pool) *StageRepository {
	return &StageRepository{db: db}
}

// UpdateStage перезаписывает изменяемые поля этапа целиком.
// Этап к этому моменту уже прошёл доменную нормализацию, поэтому
// частичный UPDATE тут не нужен.
func (r *StageRepository) UpdateStage(ctx context.Context, q Querier, stage entities.Stage) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			status = $1,
			percentage = $2,
			start_date = $3,
			end_date = $4,
			completed_units = $5,
			responsible_person = $6,
			notes = $7
		WHERE id = $8`, stagesTable)

	tag, err := q.Exec(ctx, query,
		stage.Status, stage.Percentage, stage.StartDate, stage.EndDate,
		stage.CompletedUnits, stage.ResponsiblePerson, stage.Notes, stage.ID,
	)
	if err != nil {
		return fmt.Errorf("не удалось обновить этап «%s»: %w", stage.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// UpdateStages сохраняет пачку этапов — каскады затрагивают несколько строк сразу.
func (r *StageRepository) UpdateStages(ctx context.Context, q Querier, stages []entities.Stage) error {
	for _, stage := range stages {
		if err := r.UpdateStage(ctx, q, stage); err != nil {
			return err
		}
	}
	return nil
}
