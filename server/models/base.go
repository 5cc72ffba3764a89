package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DEFAULT_PAGE_SIZE = 10
	MAX_PAGE_SIZE     = 100
)

// BaseModel carries the server-generated identifier & timestamps.
// Timestamps are bookkeeping only and are never serialized.
type BaseModel struct {
	ID        string    `json:"id,omitempty" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// BeforeCreate assigns a fresh id, discarding whatever the caller supplied
func (base *BaseModel) BeforeCreate(tx *gorm.DB) error {
	base.ID = uuid.NewString()
	return nil
}

type Paging struct {
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Size  int64 `json:"size"`
	Pages int64 `json:"pages"`
}

// ---------------------------------------------------------------------------------//
// Scopes
// --------------------------------------------------------------------------------//

// paginate selects the zero-indexed 'page' of 'pageSize' rows
func paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(page * pageSize).Limit(pageSize)
	}
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func newPaging(page, pageSize, total int64) *Paging {
	paging := &Paging{Page: page, Size: pageSize, Total: total}
	if pageSize > 0 {
		paging.Pages = int64(math.Ceil(float64(total) / float64(pageSize)))
	}

	return paging
}
