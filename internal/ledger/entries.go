package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MayankXDev13/ledger-x/internal/model"
)

// EntryStore manages ledger entries: strictly positive amounts, in-place
// edits including backdating, and hard deletes that vanish from every
// aggregate immediately.
type EntryStore struct {
	db *gorm.DB
}

// NewEntryStore builds an entry store
func NewEntryStore(db *gorm.DB) *EntryStore {
	return &EntryStore{db: db}
}

// Add records a new entry against a live contact of the user
func (s *EntryStore) Add(userID, contactID uuid.UUID, amountCents int64, entryType string, note *string) (*model.LedgerEntry, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	if err := validateEntryType(entryType); err != nil {
		return nil, err
	}

	var contact model.Contact
	err := s.db.Select("id").Where("id = ? AND user_id = ?", contactID, userID).First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup contact: %w", err)
	}

	entry := &model.LedgerEntry{
		ContactID:   contactID,
		AmountCents: amountCents,
		Type:        entryType,
		Note:        note,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return entry, nil
}

// Update fully overwrites the mutable fields, including the displayed
// timestamp (backdating is allowed), and stamps updated_at.
func (s *EntryStore) Update(userID, entryID uuid.UUID, amountCents int64, entryType string, note *string, createdAt time.Time) error {
	if amountCents <= 0 {
		return ErrInvalidAmount
	}
	if err := validateEntryType(entryType); err != nil {
		return err
	}
	if _, err := s.get(userID, entryID); err != nil {
		return err
	}

	now := time.Now()
	err := s.db.Model(&model.LedgerEntry{}).
		Where("id = ?", entryID).
		Updates(map[string]interface{}{
			"amount_cents": amountCents,
			"type":         entryType,
			"note":         note,
			"created_at":   createdAt,
			"updated_at":   now,
		}).Error
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return nil
}

// Delete hard-deletes the entry and its tag links; there is no tombstone.
// Once removed the entry contributes to no balance computation.
func (s *EntryStore) Delete(userID, entryID uuid.UUID) error {
	if _, err := s.get(userID, entryID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// Association rows must not outlive the entry
		if err := tx.Exec("DELETE FROM transaction_tag_map WHERE transaction_id = ?", entryID).Error; err != nil {
			return fmt.Errorf("delete entry tag links: %w", err)
		}
		if err := tx.Delete(&model.LedgerEntry{}, "id = ?", entryID).Error; err != nil {
			return fmt.Errorf("delete entry: %w", err)
		}
		return nil
	})
}

// Get returns one entry, scoped to the user through its contact. Entries of
// tombstoned contacts remain addressable by id.
func (s *EntryStore) Get(userID, entryID uuid.UUID) (*model.LedgerEntry, error) {
	return s.get(userID, entryID)
}

// List returns the contact's entries ordered by created_at descending,
// optionally filtered to an inclusive date range. Either bound may be nil,
// meaning unbounded on that side.
func (s *EntryStore) List(userID, contactID uuid.UUID, start, end *time.Time) ([]model.LedgerEntry, error) {
	// Tombstoned contacts keep their history readable, so the ownership
	// check is unscoped.
	var count int64
	err := s.db.Unscoped().Model(&model.Contact{}).
		Where("id = ? AND user_id = ?", contactID, userID).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("lookup contact: %w", err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	q := s.db.Where("contact_id = ?", contactID)
	if start != nil {
		q = q.Where("created_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("created_at <= ?", *end)
	}

	var entries []model.LedgerEntry
	if err := q.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

func (s *EntryStore) get(userID, entryID uuid.UUID) (*model.LedgerEntry, error) {
	var entry model.LedgerEntry
	err := s.db.
		Joins("JOIN contacts ON contacts.id = ledger_entries.contact_id").
		Where("ledger_entries.id = ? AND contacts.user_id = ?", entryID, userID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return &entry, nil
}

func validateEntryType(entryType string) error {
	if entryType != model.TypeCredit && entryType != model.TypeDebit {
		return &ValidationError{Field: "type", Message: "type must be credit or debit"}
	}
	return nil
}
