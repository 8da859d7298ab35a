package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry types. Credit is money the business extended to the contact
// (increases the balance); debit is money received (decreases it).
const (
	TypeCredit = "credit"
	TypeDebit  = "debit"
)

// LedgerEntry is a single credit or debit record against a contact. The
// amount is strictly positive paise; sign is conveyed only by Type. Entries
// are hard-deleted, never tombstoned.
type LedgerEntry struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ContactID   uuid.UUID  `json:"contact_id" gorm:"type:uuid;not null;index"`
	AmountCents int64      `json:"amount_cents" gorm:"not null"`
	Type        string     `json:"type" gorm:"type:varchar(10);not null"`
	Note        *string    `json:"note" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt   *time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// TableName matches the original schema name
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// BeforeCreate assigns a UUID primary key if one is not set
func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
