package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"production-tracking/internal/entities"
	apperrors "production-tracking/pkg/errors"
)

type FileRepositoryInterface interface {
	AddFile(ctx context.Context, file entities.OrderFile) (*entities.OrderFile, error)
	FindFile(ctx context.Context, orderID, fileID string) (*entities.OrderFile, error)
	DeleteFile(ctx context.Context, orderID, fileID string) error
}

type FileRepository struct {
	db *pgxpool.Pool
}

func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) AddFile(ctx context.Context, file entities.OrderFile) (*entities.OrderFile, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, order_id, filename, original_filename, file_path)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING uploaded_at`, orderFilesTable)

	err := r.db.QueryRow(ctx, query,
		file.ID, file.OrderID, file.Filename, file.OriginalFilename, file.FilePath,
	).Scan(&file.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("не удалось сохранить файл заказа: %w", err)
	}

	return &file, nil
}

func (r *FileRepository) FindFile(ctx context.Context, orderID, fileID string) (*entities.OrderFile, error) {
	query := fmt.Sprintf(`
		SELECT id, order_id, filename, original_filename, file_path, uploaded_at
		FROM %s WHERE id = $1 AND order_id = $2`, orderFilesTable)

	var f entities.OrderFile
	err := r.db.QueryRow(ctx, query, fileID, orderID).
		Scan(&f.ID, &f.OrderID, &f.Filename, &f.OriginalFilename, &f.FilePath, &f.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("не удалось получить файл заказа: %w", err)
	}

	return &f, nil
}

func (r *FileRepository) DeleteFile(ctx context.Context, orderID, fileID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND order_id = $2", orderFilesTable)

	tag, err := r.db.Exec(ctx, query, fileID, orderID)
	if err != nil {
		return fmt.Errorf("не удалось удалить файл заказа: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
