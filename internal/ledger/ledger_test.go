package ledger

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/MayankXDev13/ledger-x/internal/model"
)

// testEnv wires every store against a fresh in-memory database with the
// same migration set as production.
type testEnv struct {
	db       *gorm.DB
	contacts *ContactStore
	entries  *EntryStore
	ctags    *TagStore
	ttags    *TagStore
	balances *BalanceStore
	userID   uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	// A pooled :memory: handle would give each connection its own database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.Contact{},
		&model.LedgerEntry{},
		&model.ContactTag{},
		&model.TransactionTag{},
		&model.ContactTagMap{},
		&model.TransactionTagMap{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	ctags := NewContactTagStore(db)
	return &testEnv{
		db:       db,
		contacts: NewContactStore(db, ctags),
		entries:  NewEntryStore(db),
		ctags:    ctags,
		ttags:    NewTransactionTagStore(db),
		balances: NewBalanceStore(db),
		userID:   uuid.New(),
	}
}

func (env *testEnv) mustContact(t *testing.T, name, phone string) *model.Contact {
	t.Helper()
	contact, err := env.contacts.CreateOrRestore(env.userID, name, phone, nil)
	if err != nil {
		t.Fatalf("create contact %s: %v", name, err)
	}
	return contact
}

func (env *testEnv) mustEntry(t *testing.T, contactID uuid.UUID, entryType string, cents int64) *model.LedgerEntry {
	t.Helper()
	entry, err := env.entries.Add(env.userID, contactID, cents, entryType, nil)
	if err != nil {
		t.Fatalf("add %s entry of %d: %v", entryType, cents, err)
	}
	return entry
}

// mustEntryAt inserts an entry with a specific created_at, for date-range
// and month-boundary scenarios.
func (env *testEnv) mustEntryAt(t *testing.T, contactID uuid.UUID, entryType string, cents int64, at time.Time) *model.LedgerEntry {
	t.Helper()
	entry := &model.LedgerEntry{
		ContactID:   contactID,
		AmountCents: cents,
		Type:        entryType,
		CreatedAt:   at,
	}
	if err := env.db.Create(entry).Error; err != nil {
		t.Fatalf("insert entry at %v: %v", at, err)
	}
	return entry
}

func strptr(s string) *string {
	return &s
}
