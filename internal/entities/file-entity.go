package entities

import "time"

type OrderFile struct {
	ID               string    `json:"id"`
	OrderID          string    `json:"-"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	FilePath         string    `json:"file_path"`
	UploadedAt       time.Time `json:"uploaded_at"`
}
