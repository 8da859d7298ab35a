package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MayankXDev13/ledger-x/internal/model"
)

// tagNamespace binds a TagStore to one of the two independent tag tables and
// its association table.
type tagNamespace struct {
	label     string // "contact" or "transaction", for error text
	tagTable  string
	mapTable  string
	entityCol string
}

var (
	contactTagNamespace = tagNamespace{
		label:     "contact",
		tagTable:  "contact_tags",
		mapTable:  "contact_tag_map",
		entityCol: "contact_id",
	}
	transactionTagNamespace = tagNamespace{
		label:     "transaction",
		tagTable:  "transaction_tags",
		mapTable:  "transaction_tag_map",
		entityCol: "transaction_id",
	}
)

// TagStore manages one tag namespace and its entity associations.
type TagStore struct {
	db *gorm.DB
	ns tagNamespace
}

// NewContactTagStore returns the store for the contact tag namespace
func NewContactTagStore(db *gorm.DB) *TagStore {
	return &TagStore{db: db, ns: contactTagNamespace}
}

// NewTransactionTagStore returns the store for the transaction tag namespace
func NewTransactionTagStore(db *gorm.DB) *TagStore {
	return &TagStore{db: db, ns: transactionTagNamespace}
}

// Create inserts a new tag for the user. Duplicate names are allowed.
func (s *TagStore) Create(userID uuid.UUID, name, color string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}
	if color == "" {
		color = model.TagColors[0]
	}

	tag := &model.Tag{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		CreatedAt: time.Now(),
	}
	if err := s.db.Table(s.ns.tagTable).Create(tag).Error; err != nil {
		return nil, fmt.Errorf("create %s tag: %w", s.ns.label, err)
	}
	return tag, nil
}

// Update overwrites a tag's name and color
func (s *TagStore) Update(userID, tagID uuid.UUID, name, color string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}

	res := s.db.Table(s.ns.tagTable).
		Where("id = ? AND user_id = ?", tagID, userID).
		Updates(map[string]interface{}{"name": name, "color": color})
	if res.Error != nil {
		return fmt.Errorf("update %s tag: %w", s.ns.label, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns one tag scoped to the user
func (s *TagStore) Get(userID, tagID uuid.UUID) (*model.Tag, error) {
	var tag model.Tag
	err := s.db.Table(s.ns.tagTable).
		Where("id = ? AND user_id = ?", tagID, userID).
		First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s tag: %w", s.ns.label, err)
	}
	return &tag, nil
}

// List returns all of the user's tags ordered by name ascending
func (s *TagStore) List(userID uuid.UUID) ([]model.Tag, error) {
	var tags []model.Tag
	err := s.db.Table(s.ns.tagTable).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("list %s tags: %w", s.ns.label, err)
	}
	return tags, nil
}

// UsageCount reports how many distinct entities currently reference the tag.
// It is computed at call time so callers can warn before a delete.
func (s *TagStore) UsageCount(userID, tagID uuid.UUID) (int64, error) {
	if _, err := s.Get(userID, tagID); err != nil {
		return 0, err
	}

	var count int64
	err := s.db.Table(s.ns.mapTable).
		Where("tag_id = ?", tagID).
		Distinct(s.ns.entityCol).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count %s tag usage: %w", s.ns.label, err)
	}
	return count, nil
}

// Delete removes the tag and every association row referencing it in one
// transaction, so no dangling link is ever observable.
func (s *TagStore) Delete(userID, tagID uuid.UUID) error {
	if _, err := s.Get(userID, tagID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM "+s.ns.mapTable+" WHERE tag_id = ?", tagID).Error; err != nil {
			return fmt.Errorf("delete %s tag links: %w", s.ns.label, err)
		}
		res := tx.Exec("DELETE FROM "+s.ns.tagTable+" WHERE id = ? AND user_id = ?", tagID, userID)
		if res.Error != nil {
			return fmt.Errorf("delete %s tag: %w", s.ns.label, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListFor returns the tags currently linked to the entity, ordered by tag
// name ascending.
func (s *TagStore) ListFor(entityID uuid.UUID) ([]model.Tag, error) {
	var tags []model.Tag
	err := s.db.Table(s.ns.tagTable+" AS t").
		Select("t.*").
		Joins("JOIN "+s.ns.mapTable+" m ON m.tag_id = t.id").
		Where("m."+s.ns.entityCol+" = ?", entityID).
		Order("t.name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("list %s tags for entity: %w", s.ns.label, err)
	}
	return tags, nil
}

// Replace atomically swaps the entity's association set for tagIDs. The diff
// of current vs desired is applied in one transaction: links not in tagIDs
// are deleted, missing ones inserted, existing ones left untouched. An empty
// tagIDs clears all associations. Calling twice with the same set is a no-op;
// repeated ids in tagIDs collapse to one link. Every id must name a tag the
// user owns in this namespace, or the whole replace fails with ErrNotFound
// and no link is written.
func (s *TagStore) Replace(userID, entityID uuid.UUID, tagIDs []uuid.UUID) error {
	desired := make(map[uuid.UUID]struct{}, len(tagIDs))
	unique := make([]uuid.UUID, 0, len(tagIDs))
	for _, id := range tagIDs {
		if _, seen := desired[id]; seen {
			continue
		}
		desired[id] = struct{}{}
		unique = append(unique, id)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if len(unique) > 0 {
			var known int64
			err := tx.Table(s.ns.tagTable).
				Where("id IN ? AND user_id = ?", unique, userID).
				Count(&known).Error
			if err != nil {
				return fmt.Errorf("resolve %s tags: %w", s.ns.label, err)
			}
			if known != int64(len(unique)) {
				return ErrNotFound
			}
		}

		var current []uuid.UUID
		err := tx.Table(s.ns.mapTable).
			Where(s.ns.entityCol+" = ?", entityID).
			Pluck("tag_id", &current).Error
		if err != nil {
			return fmt.Errorf("load current %s tag links: %w", s.ns.label, err)
		}

		currentSet := make(map[uuid.UUID]struct{}, len(current))
		var toRemove []uuid.UUID
		for _, id := range current {
			currentSet[id] = struct{}{}
			if _, keep := desired[id]; !keep {
				toRemove = append(toRemove, id)
			}
		}

		if len(toRemove) > 0 {
			err = tx.Exec("DELETE FROM "+s.ns.mapTable+" WHERE "+s.ns.entityCol+" = ? AND tag_id IN ?",
				entityID, toRemove).Error
			if err != nil {
				return fmt.Errorf("remove %s tag links: %w", s.ns.label, err)
			}
		}

		now := time.Now()
		for _, id := range unique {
			if _, exists := currentSet[id]; exists {
				continue
			}
			err = tx.Exec("INSERT INTO "+s.ns.mapTable+" (id, "+s.ns.entityCol+", tag_id, created_at) VALUES (?, ?, ?, ?)",
				uuid.New(), entityID, id, now).Error
			if err != nil {
				return fmt.Errorf("add %s tag link: %w", s.ns.label, err)
			}
		}
		return nil
	})
}

// Attach links a single tag to the entity. Re-adding an existing link is a
// no-op, not an error.
func (s *TagStore) Attach(entityID, tagID uuid.UUID) error {
	var count int64
	err := s.db.Table(s.ns.mapTable).
		Where(s.ns.entityCol+" = ? AND tag_id = ?", entityID, tagID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("check %s tag link: %w", s.ns.label, err)
	}
	if count > 0 {
		return nil
	}

	err = s.db.Exec("INSERT INTO "+s.ns.mapTable+" (id, "+s.ns.entityCol+", tag_id, created_at) VALUES (?, ?, ?, ?)",
		uuid.New(), entityID, tagID, time.Now()).Error
	if err != nil {
		return fmt.Errorf("add %s tag link: %w", s.ns.label, err)
	}
	return nil
}

// Detach removes a single tag link. Removing a link that does not exist is a
// no-op.
func (s *TagStore) Detach(entityID, tagID uuid.UUID) error {
	err := s.db.Exec("DELETE FROM "+s.ns.mapTable+" WHERE "+s.ns.entityCol+" = ? AND tag_id = ?",
		entityID, tagID).Error
	if err != nil {
		return fmt.Errorf("remove %s tag link: %w", s.ns.label, err)
	}
	return nil
}
