package ledger

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MayankXDev13/ledger-x/internal/model"
)

// ContactStore manages the contact lifecycle: create-or-restore, edit with
// phone uniqueness, and soft deletion.
type ContactStore struct {
	db   *gorm.DB
	tags *TagStore // contact tag namespace, for the association step on create
}

// NewContactStore builds a contact store; tags must be the contact-namespace
// tag store.
func NewContactStore(db *gorm.DB, tags *TagStore) *ContactStore {
	return &ContactStore{db: db, tags: tags}
}

// CreateOrRestore inserts a new contact, or revives a tombstoned one that
// matches the phone number. A live contact with the same phone fails with
// ErrDuplicatePhone. Restoring clears deleted_at and overwrites the name in
// place, so the old row (and its transaction history) survives under the
// revived identity.
//
// After the contact row is settled its tag associations are replaced with
// tagIDs. That step is best-effort: if it fails, the persisted contact is
// returned together with an error wrapping ErrTagAssignFailed, and the
// contact write is not rolled back.
func (s *ContactStore) CreateOrRestore(userID uuid.UUID, name, phone string, tagIDs []uuid.UUID) (*model.Contact, error) {
	name, phone, err := validateContact(name, phone)
	if err != nil {
		return nil, err
	}

	// A live row and a tombstoned row can share a phone (an edit may take
	// over a tombstoned contact's number), so the live row must win the
	// lookup.
	var contact *model.Contact
	var existing model.Contact
	lookupErr := s.db.Unscoped().
		Where("user_id = ? AND phone = ?", userID, phone).
		Order("deleted_at IS NULL DESC, deleted_at DESC").
		First(&existing).Error
	switch {
	case lookupErr == nil:
		if !existing.DeletedAt.Valid {
			return nil, ErrDuplicatePhone
		}
		// Revive the tombstone in place, keeping the id and its history
		updates := map[string]interface{}{"name": name, "deleted_at": nil}
		err := s.db.Unscoped().Model(&model.Contact{}).
			Where("id = ?", existing.ID).
			Updates(updates).Error
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrDuplicatePhone
			}
			return nil, fmt.Errorf("restore contact: %w", err)
		}
		existing.Name = name
		existing.DeletedAt = gorm.DeletedAt{}
		contact = &existing
	case errors.Is(lookupErr, gorm.ErrRecordNotFound):
		contact = &model.Contact{UserID: userID, Name: name, Phone: phone}
		if err := s.db.Create(contact).Error; err != nil {
			// The store constraint is the authoritative guard; the pre-check
			// above is inherently racy.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrDuplicatePhone
			}
			return nil, fmt.Errorf("create contact: %w", err)
		}
	default:
		return nil, fmt.Errorf("lookup contact: %w", lookupErr)
	}

	if err := s.tags.Replace(userID, contact.ID, tagIDs); err != nil {
		return contact, fmt.Errorf("%w: %v", ErrTagAssignFailed, err)
	}
	return contact, nil
}

// Update overwrites a contact's name and phone, re-validating phone
// uniqueness against the user's other live contacts.
func (s *ContactStore) Update(userID, contactID uuid.UUID, name, phone string) error {
	name, phone, err := validateContact(name, phone)
	if err != nil {
		return err
	}

	var contact model.Contact
	err = s.db.Where("id = ? AND user_id = ?", contactID, userID).First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup contact: %w", err)
	}

	var conflicts int64
	err = s.db.Model(&model.Contact{}).
		Where("user_id = ? AND phone = ? AND id != ?", userID, phone, contactID).
		Count(&conflicts).Error
	if err != nil {
		return fmt.Errorf("check phone uniqueness: %w", err)
	}
	if conflicts > 0 {
		return ErrDuplicatePhone
	}

	contact.Name = name
	contact.Phone = phone
	if err := s.db.Save(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePhone
		}
		return fmt.Errorf("update contact: %w", err)
	}
	return nil
}

// SoftDelete tombstones the contact. Entries and tag associations are left
// untouched. Deleting an already-deleted contact is a no-op.
func (s *ContactStore) SoftDelete(userID, contactID uuid.UUID) error {
	res := s.db.Where("user_id = ?", userID).Delete(&model.Contact{}, "id = ?", contactID)
	if res.Error != nil {
		return fmt.Errorf("delete contact: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Already tombstoned is fine; a contact that never existed is not.
		var count int64
		err := s.db.Unscoped().Model(&model.Contact{}).
			Where("id = ? AND user_id = ?", contactID, userID).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("check contact: %w", err)
		}
		if count == 0 {
			return ErrNotFound
		}
	}
	return nil
}

// Get returns one live contact scoped to the user
func (s *ContactStore) Get(userID, contactID uuid.UUID) (*model.Contact, error) {
	var contact model.Contact
	err := s.db.Where("id = ? AND user_id = ?", contactID, userID).First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return &contact, nil
}

// List returns the user's live contacts ordered by name ascending
func (s *ContactStore) List(userID uuid.UUID) ([]model.Contact, error) {
	var contacts []model.Contact
	err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// validateContact applies the write-time input rules: name non-empty after
// trimming, phone carrying 10 to 12 digits once formatting characters are
// stripped. The trimmed values are returned.
func validateContact(name, phone string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", &ValidationError{Field: "name", Message: "name is required"}
	}
	phone = strings.TrimSpace(phone)
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < 10 || digits > 12 {
		return "", "", &ValidationError{Field: "phone", Message: "valid phone number required"}
	}
	return name, phone, nil
}
