package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TagColors is the default palette offered to callers. Color values are a
// presentation attribute and free-form strings are accepted as well.
var TagColors = []string{
	"#3B82F6", // Blue
	"#10B981", // Green
	"#F59E0B", // Amber
	"#EF4444", // Red
	"#8B5CF6", // Purple
	"#EC4899", // Pink
	"#06B6D4", // Cyan
	"#84CC16", // Lime
}

// Tag is the shared row shape of both tag namespaces. Duplicate names are
// allowed within a user's namespace.
type Tag struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Color     string    `json:"color" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactTag is the contact tag namespace
type ContactTag struct {
	Tag
}

// TableName matches the original schema name
func (ContactTag) TableName() string {
	return "contact_tags"
}

// TransactionTag is the transaction tag namespace, independent of contact tags
type TransactionTag struct {
	Tag
}

// TableName matches the original schema name
func (TransactionTag) TableName() string {
	return "transaction_tags"
}

// ContactTagMap links a contact to a contact tag. At most one row exists per
// (contact, tag) pair.
type ContactTagMap struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ContactID uuid.UUID `json:"contact_id" gorm:"type:uuid;not null;uniqueIndex:idx_contact_tag_pair"`
	TagID     uuid.UUID `json:"tag_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_contact_tag_pair"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName matches the original schema name
func (ContactTagMap) TableName() string {
	return "contact_tag_map"
}

// BeforeCreate assigns a UUID primary key if one is not set
func (m *ContactTagMap) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TransactionTagMap links a ledger entry to a transaction tag. At most one
// row exists per (transaction, tag) pair.
type TransactionTagMap struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	TransactionID uuid.UUID `json:"transaction_id" gorm:"type:uuid;not null;uniqueIndex:idx_transaction_tag_pair"`
	TagID         uuid.UUID `json:"tag_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_transaction_tag_pair"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName matches the original schema name
func (TransactionTagMap) TableName() string {
	return "transaction_tag_map"
}

// BeforeCreate assigns a UUID primary key if one is not set
func (m *TransactionTagMap) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
