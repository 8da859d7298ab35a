package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MayankXDev13/ledger-x/internal/model"
)

// ContactBalance is the derived credit/debit/net summary for one contact.
// A positive balance means the business is owed money by the contact.
type ContactBalance struct {
	TotalCreditCents int64 `json:"total_credit_cents"`
	TotalDebitCents  int64 `json:"total_debit_cents"`
	BalanceCents     int64 `json:"balance_cents"`
}

// TagTotal is the signed amount subtotal for one transaction tag of a
// contact. An entry with several tags contributes its full amount to each.
type TagTotal struct {
	TagID      uuid.UUID `json:"tag_id"`
	TagName    string    `json:"tag_name"`
	TagColor   string    `json:"tag_color"`
	TotalCents int64     `json:"total_cents"`
}

// RecentEntry is a dashboard row: an entry joined with its contact's name.
type RecentEntry struct {
	ID          uuid.UUID `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	Type        string    `json:"type"`
	Note        *string   `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
	ContactName string    `json:"contact_name"`
}

// BalanceStore derives aggregates from current entries on every call. There
// is no cached balance column anywhere that could drift; every sum is a
// single server-side query and no entry list crosses the store boundary.
type BalanceStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewBalanceStore builds a balance store
func NewBalanceStore(db *gorm.DB) *BalanceStore {
	return &BalanceStore{db: db, now: time.Now}
}

const signedSum = "COALESCE(SUM(CASE WHEN e.type = 'credit' THEN e.amount_cents ELSE -e.amount_cents END), 0)"

// ContactBalance recomputes the contact's totals from its current entries
func (s *BalanceStore) ContactBalance(contactID uuid.UUID) (*ContactBalance, error) {
	var row struct {
		TotalCreditCents int64
		TotalDebitCents  int64
	}
	err := s.db.Raw(`
		SELECT
			COALESCE(SUM(CASE WHEN type = 'credit' THEN amount_cents ELSE 0 END), 0) AS total_credit_cents,
			COALESCE(SUM(CASE WHEN type = 'debit' THEN amount_cents ELSE 0 END), 0) AS total_debit_cents
		FROM ledger_entries
		WHERE contact_id = ?`, contactID).Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("contact balance: %w", err)
	}
	return &ContactBalance{
		TotalCreditCents: row.TotalCreditCents,
		TotalDebitCents:  row.TotalDebitCents,
		BalanceCents:     row.TotalCreditCents - row.TotalDebitCents,
	}, nil
}

// TagTotals sums the signed amount of the contact's entries per transaction
// tag, ordered by tag name ascending.
func (s *BalanceStore) TagTotals(contactID uuid.UUID) ([]TagTotal, error) {
	var totals []TagTotal
	err := s.db.Raw(`
		SELECT t.id AS tag_id, t.name AS tag_name, t.color AS tag_color, `+signedSum+` AS total_cents
		FROM transaction_tags t
		JOIN transaction_tag_map m ON m.tag_id = t.id
		JOIN ledger_entries e ON e.id = m.transaction_id
		WHERE e.contact_id = ?
		GROUP BY t.id, t.name, t.color
		ORDER BY t.name ASC`, contactID).Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("tag totals: %w", err)
	}
	return totals, nil
}

// PortfolioBalance sums the balance across the user's live contacts
func (s *BalanceStore) PortfolioBalance(userID uuid.UUID) (int64, error) {
	var total int64
	err := s.db.Raw(`
		SELECT COALESCE(SUM(b.balance), 0) FROM (
			SELECT `+signedSum+` AS balance
			FROM contacts c
			LEFT JOIN ledger_entries e ON e.contact_id = c.id
			WHERE c.user_id = ? AND c.deleted_at IS NULL
			GROUP BY c.id
		) b`, userID).Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("portfolio balance: %w", err)
	}
	return total, nil
}

// PendingDue sums only positive balances: the money still owed to the
// business by live contacts.
func (s *BalanceStore) PendingDue(userID uuid.UUID) (int64, error) {
	var total int64
	err := s.db.Raw(`
		SELECT COALESCE(SUM(CASE WHEN b.balance > 0 THEN b.balance ELSE 0 END), 0) FROM (
			SELECT `+signedSum+` AS balance
			FROM contacts c
			LEFT JOIN ledger_entries e ON e.contact_id = c.id
			WHERE c.user_id = ? AND c.deleted_at IS NULL
			GROUP BY c.id
		) b`, userID).Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("pending due: %w", err)
	}
	return total, nil
}

// MonthToDateNet sums credit minus debit over entries created since the
// first day of the current calendar month, across all the user's contacts
// (tombstoned included, matching the dashboard's historical behavior).
func (s *BalanceStore) MonthToDateNet(userID uuid.UUID) (int64, error) {
	now := s.now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var total int64
	err := s.db.Raw(`
		SELECT `+signedSum+`
		FROM ledger_entries e
		JOIN contacts c ON c.id = e.contact_id
		WHERE c.user_id = ? AND e.created_at >= ?`, userID, startOfMonth).Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("month to date net: %w", err)
	}
	return total, nil
}

// CustomerCount counts the user's live contacts
func (s *BalanceStore) CustomerCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&model.Contact{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("customer count: %w", err)
	}
	return count, nil
}

// RecentEntries returns the latest entries across the user's live contacts,
// newest first, with the contact name attached.
func (s *BalanceStore) RecentEntries(userID uuid.UUID, limit int) ([]RecentEntry, error) {
	if limit <= 0 {
		limit = 5
	}
	var entries []RecentEntry
	err := s.db.Raw(`
		SELECT e.id, e.amount_cents, e.type, e.note, e.created_at, c.name AS contact_name
		FROM ledger_entries e
		JOIN contacts c ON c.id = e.contact_id
		WHERE c.user_id = ? AND c.deleted_at IS NULL
		ORDER BY e.created_at DESC
		LIMIT ?`, userID, limit).Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("recent entries: %w", err)
	}
	return entries, nil
}
