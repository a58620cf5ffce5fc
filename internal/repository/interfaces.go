package repository

import (
	"time"

	"exposurestats/internal/dto"
	"exposurestats/internal/model"
)

// PhotoRepository defines the interface for photo data operations.
type PhotoRepository interface {
	// Create operations
	Insert(p *model.Photo) (int64, error)
	InsertBatch(photos []model.Photo) error

	// Read operations
	GetByName(name string) (*model.Photo, error)
	GetAll(filter *dto.PhotoFilters) ([]model.Photo, error)
	GetTotalCount(filter *dto.PhotoFilters) (int, error)

	// Delete operations
	DeleteAll() error
}

// KeywordRepository defines the interface for keyword and tagging
// operations.
type KeywordRepository interface {
	// Create operations
	EnsureKeyword(keyword string, aiTag bool, category string) (int64, error)
	TagPhoto(photoID, keywordID int64) error
	TagPhotoAI(photoID, keywordID int64, taggedAt time.Time) error

	// Read operations
	GetAllKeywords() ([]model.Keyword, error)
	GetKeywordsByPhotoID(photoID int64) ([]string, error)

	// Delete operations
	DeleteAll() error
}
