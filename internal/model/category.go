package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AutoCreatedDescription marks categories created implicitly when a task
// references a category name that does not exist yet for its owner.
const AutoCreatedDescription = "Auto-created"

// Category groups a user's tasks. Names are unique per owner.
type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `json:"-" gorm:"type:char(36);not null;uniqueIndex:idx_user_category_name"`
	Name        string    `json:"name" gorm:"size:50;not null;uniqueIndex:idx_user_category_name"`
	Description string    `json:"description" gorm:"size:200"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Tasks []Task `json:"-" gorm:"foreignKey:CategoryID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
