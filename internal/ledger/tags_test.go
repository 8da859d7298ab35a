package ledger

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/MayankXDev13/ledger-x/internal/model"
)

func TestTagCreateAndList(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.ctags.Create(env.userID, "  ", "#FFF"); err == nil {
		t.Fatal("blank name must be rejected")
	}

	vip, err := env.ctags.Create(env.userID, "VIP", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if vip.Color != model.TagColors[0] {
		t.Fatalf("expected default palette color, got %q", vip.Color)
	}
	if _, err := env.ctags.Create(env.userID, "Local", "#10B981"); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Duplicate names are allowed
	if _, err := env.ctags.Create(env.userID, "VIP", "#EF4444"); err != nil {
		t.Fatalf("duplicate name must be allowed: %v", err)
	}

	tags, err := env.ctags.List(env.userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tags) != 3 || tags[0].Name != "Local" {
		t.Fatalf("expected 3 tags ordered by name, got %+v", tags)
	}

	// The two namespaces are independent
	ttags, err := env.ttags.List(env.userID)
	if err != nil {
		t.Fatalf("list transaction tags: %v", err)
	}
	if len(ttags) != 0 {
		t.Fatalf("contact tags must not leak into the transaction namespace")
	}
}

func TestTagUpdate(t *testing.T) {
	env := newTestEnv(t)
	tag, err := env.ctags.Create(env.userID, "VIP", "#EF4444")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := env.ctags.Update(env.userID, tag.ID, "Premium", "#8B5CF6"); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := env.ctags.Get(env.userID, tag.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Premium" || got.Color != "#8B5CF6" {
		t.Fatalf("update not applied: %+v", got)
	}

	if err := env.ctags.Update(env.userID, uuid.New(), "Ghost", "#FFF"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := env.ctags.Update(uuid.New(), tag.ID, "Stolen", "#FFF"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign user's update must fail, got %v", err)
	}
}

func TestReplaceAssociations(t *testing.T) {
	env := newTestEnv(t)
	contact := env.mustContact(t, "Asha", "9876543210")
	t1, _ := env.ctags.Create(env.userID, "Alpha", "")
	t2, _ := env.ctags.Create(env.userID, "Beta", "")
	t3, _ := env.ctags.Create(env.userID, "Gamma", "")

	if err := env.ctags.Replace(env.userID, contact.ID, []uuid.UUID{t1.ID, t2.ID}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	tags, err := env.ctags.ListFor(contact.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tags) != 2 || tags[0].Name != "Alpha" || tags[1].Name != "Beta" {
		t.Fatalf("expected [Alpha Beta], got %+v", tags)
	}

	// Replacing with the same set twice is a no-op
	if err := env.ctags.Replace(env.userID, contact.ID, []uuid.UUID{t1.ID, t2.ID}); err != nil {
		t.Fatalf("idempotent replace: %v", err)
	}
	tags, _ = env.ctags.ListFor(contact.ID)
	if len(tags) != 2 {
		t.Fatalf("idempotent replace changed the set: %+v", tags)
	}

	// A diff swap keeps the surviving link and applies both sides
	if err := env.ctags.Replace(env.userID, contact.ID, []uuid.UUID{t2.ID, t3.ID}); err != nil {
		t.Fatalf("swap replace: %v", err)
	}
	tags, _ = env.ctags.ListFor(contact.ID)
	if len(tags) != 2 || tags[0].Name != "Beta" || tags[1].Name != "Gamma" {
		t.Fatalf("expected [Beta Gamma], got %+v", tags)
	}

	// The empty set is a valid request that clears everything
	if err := env.ctags.Replace(env.userID, contact.ID, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	tags, _ = env.ctags.ListFor(contact.ID)
	if len(tags) != 0 {
		t.Fatalf("expected no tags, got %+v", tags)
	}
}

func TestReplaceRejectsUnknownTags(t *testing.T) {
	env := newTestEnv(t)
	contact := env.mustContact(t, "Asha", "9876543210")
	vip, _ := env.ctags.Create(env.userID, "VIP", "")

	// An id naming no tag fails the whole replace; no link may be written
	if err := env.ctags.Replace(env.userID, contact.ID, []uuid.UUID{vip.ID, uuid.New()}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown tag id: expected ErrNotFound, got %v", err)
	}
	tags, err := env.ctags.ListFor(contact.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("failed replace must not leave links, got %+v", tags)
	}

	// Another user's tag is just as unknown
	foreign, _ := env.ctags.Create(uuid.New(), "Theirs", "")
	if err := env.ctags.Replace(env.userID, contact.ID, []uuid.UUID{foreign.ID}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign tag id: expected ErrNotFound, got %v", err)
	}

	// A tag from the other namespace does not resolve either
	ttag, _ := env.ttags.Create(env.userID, "Food", "")
	if err := env.ctags.Replace(env.userID, contact.ID, []uuid.UUID{ttag.ID}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-namespace tag id: expected ErrNotFound, got %v", err)
	}
}

func TestReplaceDedupesTagIDs(t *testing.T) {
	env := newTestEnv(t)
	contact := env.mustContact(t, "Asha", "9876543210")
	tag, _ := env.ctags.Create(env.userID, "VIP", "")

	if err := env.ctags.Replace(env.userID, contact.ID, []uuid.UUID{tag.ID, tag.ID}); err != nil {
		t.Fatalf("repeated id must collapse to one link: %v", err)
	}
	usage, err := env.ctags.UsageCount(env.userID, tag.ID)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if usage != 1 {
		t.Fatalf("expected a single link, got %d", usage)
	}
}

func TestAttachDetach(t *testing.T) {
	env := newTestEnv(t)
	contact := env.mustContact(t, "Asha", "9876543210")
	tag, _ := env.ctags.Create(env.userID, "VIP", "")

	if err := env.ctags.Attach(contact.ID, tag.ID); err != nil {
		t.Fatalf("attach: %v", err)
	}
	// Re-adding an existing association is a no-op, not an error
	if err := env.ctags.Attach(contact.ID, tag.ID); err != nil {
		t.Fatalf("re-attach: %v", err)
	}
	usage, err := env.ctags.UsageCount(env.userID, tag.ID)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if usage != 1 {
		t.Fatalf("expected a single link, got %d", usage)
	}

	if err := env.ctags.Detach(contact.ID, tag.ID); err != nil {
		t.Fatalf("detach: %v", err)
	}
	if err := env.ctags.Detach(contact.ID, tag.ID); err != nil {
		t.Fatalf("detach of a missing link must be a no-op: %v", err)
	}
	usage, _ = env.ctags.UsageCount(env.userID, tag.ID)
	if usage != 0 {
		t.Fatalf("expected no links, got %d", usage)
	}
}

func TestUsageCountAndCascadeDelete(t *testing.T) {
	env := newTestEnv(t)
	tag, _ := env.ctags.Create(env.userID, "VIP", "")
	var linked []uuid.UUID
	for _, c := range []struct{ name, phone string }{
		{"Asha", "9876543210"},
		{"Binod", "9123456789"},
		{"Chandra", "9988776655"},
	} {
		contact := env.mustContact(t, c.name, c.phone)
		if err := env.ctags.Attach(contact.ID, tag.ID); err != nil {
			t.Fatalf("attach: %v", err)
		}
		linked = append(linked, contact.ID)
	}

	usage, err := env.ctags.UsageCount(env.userID, tag.ID)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if usage != 3 {
		t.Fatalf("expected usage 3, got %d", usage)
	}

	if err := env.ctags.Delete(env.userID, tag.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := env.ctags.Get(env.userID, tag.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted tag must be gone, got %v", err)
	}

	// No previously linked entity still carries the tag
	for _, id := range linked {
		tags, err := env.ctags.ListFor(id)
		if err != nil {
			t.Fatalf("list for %s: %v", id, err)
		}
		for _, tg := range tags {
			if tg.ID == tag.ID {
				t.Fatalf("dangling link on %s", id)
			}
		}
	}
}

func TestTransactionTagNamespace(t *testing.T) {
	env := newTestEnv(t)
	contact := env.mustContact(t, "Asha", "9876543210")
	e1 := env.mustEntry(t, contact.ID, "debit", 15000)
	e2 := env.mustEntry(t, contact.ID, "credit", 5000)
	food, _ := env.ttags.Create(env.userID, "Food", "")

	if err := env.ttags.Replace(env.userID, e1.ID, []uuid.UUID{food.ID}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := env.ttags.Attach(e2.ID, food.ID); err != nil {
		t.Fatalf("attach: %v", err)
	}

	usage, err := env.ttags.UsageCount(env.userID, food.ID)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if usage != 2 {
		t.Fatalf("expected 2 distinct transactions, got %d", usage)
	}

	tags, err := env.ttags.ListFor(e1.ID)
	if err != nil {
		t.Fatalf("list for entry: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "Food" {
		t.Fatalf("expected [Food], got %+v", tags)
	}
}
