package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAddEntryValidation(t *testing.T) {
	env := newTestEnv(t)
	contact := env.mustContact(t, "Asha", "9876543210")

	if _, err := env.entries.Add(env.userID, contact.ID, 0, "credit", nil); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount: expected ErrInvalidAmount, got %v", err)
	}
	if _, err := env.entries.Add(env.userID, contact.ID, -100, "credit", nil); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("negative amount: expected ErrInvalidAmount, got %v", err)
	}

	var verr *ValidationError
	if _, err := env.entries.Add(env.userID, contact.ID, 100, "transfer", nil); !errors.As(err, &verr) {
		t.Fatalf("bad type: expected ValidationError, got %v", err)
	}

	if _, err := env.entries.Add(env.userID, uuid.New(), 100, "credit", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown contact: expected ErrNotFound, got %v", err)
	}
}

func TestAddEntry(t *testing.T) {
	env := newTestEnv(t)
	contact := env.mustContact(t, "Asha", "9876543210")

	entry, err := env.entries.Add(env.userID, contact.ID, 12550, "debit", strptr("cash received"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if entry.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if entry.UpdatedAt != nil {
		t.Fatal("updated_at must stay empty until the first edit")
	}
}

func TestListEntriesOrderAndFilter(t *testing.T) {
	env := newTestEnv(t)
	contact := env.mustContact(t, "Asha", "9876543210")
	jan := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 10, 0, 0, 0, time.UTC)
	env.mustEntryAt(t, contact.ID, "credit", 10000, jan)
	env.mustEntryAt(t, contact.ID, "debit", 5000, feb)

	all, err := env.entries.List(env.userID, contact.ID, nil, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || !all[0].CreatedAt.After(all[1].CreatedAt) {
		t.Fatalf("expected two entries newest first, got %+v", all)
	}

	// Open-ended start bound keeps only the February entry
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	filtered, err := env.entries.List(env.userID, contact.ID, &start, nil)
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(filtered) != 1 || !filtered[0].CreatedAt.Equal(feb) {
		t.Fatalf("expected only the February entry, got %+v", filtered)
	}

	// Open-ended end bound keeps only January
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	filtered, err = env.entries.List(env.userID, contact.ID, nil, &end)
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(filtered) != 1 || !filtered[0].CreatedAt.Equal(jan) {
		t.Fatalf("expected only the January entry, got %+v", filtered)
	}

	// Bounds are inclusive
	filtered, err = env.entries.List(env.userID, contact.ID, &jan, &feb)
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("inclusive bounds must keep both entries, got %d", len(filtered))
	}
}

func TestListEntriesOfTombstonedContact(t *testing.T) {
	env := newTestEnv(t)
	contact := env.mustContact(t, "Asha", "9876543210")
	env.mustEntry(t, contact.ID, "credit", 10000)
	if err := env.contacts.SoftDelete(env.userID, contact.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	// History stays readable after the tombstone
	list, err := env.entries.List(env.userID, contact.ID, nil, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(list))
	}
}

func TestUpdateEntry(t *testing.T) {
	env := newTestEnv(t)
	contact := env.mustContact(t, "Asha", "9876543210")
	entry := env.mustEntry(t, contact.ID, "credit", 10000)

	backdate := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	err := env.entries.Update(env.userID, entry.ID, 20000, "debit", strptr("corrected"), backdate)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := env.entries.Get(env.userID, entry.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.AmountCents != 20000 || got.Type != "debit" {
		t.Fatalf("overwrite not applied: %+v", got)
	}
	if got.Note == nil || *got.Note != "corrected" {
		t.Fatalf("note not applied: %+v", got.Note)
	}
	if !got.CreatedAt.Equal(backdate) {
		t.Fatalf("expected backdated created_at, got %v", got.CreatedAt)
	}
	if got.UpdatedAt == nil {
		t.Fatal("expected updated_at to be stamped")
	}

	if err := env.entries.Update(env.userID, entry.ID, 0, "debit", nil, backdate); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := env.entries.Update(env.userID, uuid.New(), 100, "debit", nil, backdate); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	env := newTestEnv(t)
	contact := env.mustContact(t, "Asha", "9876543210")
	env.mustEntry(t, contact.ID, "credit", 50000)
	extra := env.mustEntry(t, contact.ID, "debit", 20000)

	before, err := env.balances.ContactBalance(contact.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if before.BalanceCents != 30000 {
		t.Fatalf("expected 30000, got %d", before.BalanceCents)
	}

	// A tagged entry takes its association rows with it
	tag, err := env.ttags.Create(env.userID, "Food", "")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if err := env.ttags.Replace(env.userID, extra.ID, []uuid.UUID{tag.ID}); err != nil {
		t.Fatalf("tag entry: %v", err)
	}

	if err := env.entries.Delete(env.userID, extra.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Deleting then recomputing matches a history without the entry
	after, err := env.balances.ContactBalance(contact.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if after.BalanceCents != 50000 || after.TotalDebitCents != 0 {
		t.Fatalf("deleted entry still visible in aggregates: %+v", after)
	}

	usage, err := env.ttags.UsageCount(env.userID, tag.ID)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if usage != 0 {
		t.Fatalf("expected tag links removed with the entry, usage %d", usage)
	}

	if err := env.entries.Delete(env.userID, extra.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete must report ErrNotFound, got %v", err)
	}
}

func TestEntryOwnership(t *testing.T) {
	env := newTestEnv(t)
	contact := env.mustContact(t, "Asha", "9876543210")
	entry := env.mustEntry(t, contact.ID, "credit", 10000)

	stranger := uuid.New()
	if _, err := env.entries.Get(stranger, entry.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign user, got %v", err)
	}
	if err := env.entries.Delete(stranger, entry.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign delete, got %v", err)
	}
	if _, err := env.entries.List(stranger, contact.ID, nil, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign list, got %v", err)
	}
}
