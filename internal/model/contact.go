package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact represents a customer tracked in the ledger. Contacts are never
// hard-deleted; the DeletedAt tombstone keeps historical entries addressable
// and lets a re-added phone number revive the original row. Phone uniqueness
// per user is enforced by a partial index covering live rows only, so a
// tombstoned contact never blocks an edit or a fresh insert.
type Contact struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_contacts_user_phone,where:deleted_at IS NULL"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null"`
	Phone     string         `json:"phone" gorm:"type:varchar(32);not null;uniqueIndex:idx_contacts_user_phone"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName matches the original schema name
func (Contact) TableName() string {
	return "contacts"
}

// BeforeCreate assigns a UUID primary key if one is not set
func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
