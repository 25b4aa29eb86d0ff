package services

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"production-tracking/internal/dto"
	"production-tracking/internal/entities"
	"production-tracking/internal/repositories"
	"production-tracking/pkg/filestorage"
)

type AttachmentServiceInterface interface {
	UploadFile(ctx context.Context, orderID string, src io.Reader, originalFilename string) (*dto.OrderFileDTO, error)
	OpenFile(ctx context.Context, orderID, fileID string) (*entities.OrderFile, *os.File, error)
	DeleteFile(ctx context.Context, orderID, fileID string) error
}

type AttachmentService struct {
	orderRepo   repositories.OrderRepositoryInterface
	fileRepo    repositories.FileRepositoryInterface
	fileStorage filestorage.FileStorageInterface
	logger      *zap.Logger
}

func NewAttachmentService(
	orderRepo repositories.OrderRepositoryInterface,
	fileRepo repositories.FileRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) *AttachmentService {
	return &AttachmentService{
		orderRepo:   orderRepo,
		fileRepo:    fileRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *AttachmentService) UploadFile(ctx context.Context, orderID string, src io.Reader, originalFilename string) (*dto.OrderFileDTO, error) {
	// Проверяем, что заказ существует, до записи на диск
	if _, err := s.orderRepo.FindOrder(ctx, orderID); err != nil {
		return nil, err
	}

	filePath, err := s.fileStorage.Save(src, originalFilename, "orders")
	if err != nil {
		return nil, err
	}

	file := entities.OrderFile{
		ID:               uuid.NewString(),
		OrderID:          orderID,
		Filename:         filepath.Base(filePath),
		OriginalFilename: originalFilename,
		FilePath:         filePath,
	}

	saved, err := s.fileRepo.AddFile(ctx, file)
	if err != nil {
		// Запись в базу не удалась — подчищаем осиротевший файл
		if cleanupErr := s.fileStorage.Delete(filePath); cleanupErr != nil {
			s.logger.Warn("⚠️ Не удалось удалить осиротевший файл",
				zap.String("file_path", filePath), zap.Error(cleanupErr))
		}
		return nil, err
	}

	s.logger.Info("📎 Загружен файл к заказу",
		zap.String("order_id", orderID), zap.String("filename", originalFilename))

	dtoFile := filesToDTO([]entities.OrderFile{*saved})[0]
	return &dtoFile, nil
}

func (s *AttachmentService) OpenFile(ctx context.Context, orderID, fileID string) (*entities.OrderFile, *os.File, error) {
	file, err := s.fileRepo.FindFile(ctx, orderID, fileID)
	if err != nil {
		return nil, nil, err
	}

	f, err := s.fileStorage.Open(file.FilePath)
	if err != nil {
		return nil, nil, err
	}

	return file, f, nil
}

func (s *AttachmentService) DeleteFile(ctx context.Context, orderID, fileID string) error {
	file, err := s.fileRepo.FindFile(ctx, orderID, fileID)
	if err != nil {
		return err
	}

	if err := s.fileRepo.DeleteFile(ctx, orderID, fileID); err != nil {
		return err
	}

	if err := s.fileStorage.Delete(file.FilePath); err != nil {
		s.logger.Warn("⚠️ Не удалось удалить файл заказа с диска",
			zap.String("file_path", file.FilePath), zap.Error(err))
	}

	return nil
}
