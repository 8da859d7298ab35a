package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MayankXDev13/ledger-x/internal/model"
	"github.com/MayankXDev13/ledger-x/pkg/logger"
	"github.com/MayankXDev13/ledger-x/pkg/money"
	"github.com/MayankXDev13/ledger-x/prometheus"
)

// EntryRequest defines the structure for entry creation/update requests.
// Amount travels as a decimal string so floats never touch the books.
type EntryRequest struct {
	Amount    string     `json:"amount"`
	Type      string     `json:"type"`
	Note      *string    `json:"note"`
	CreatedAt *time.Time `json:"created_at"`
}

// AddEntry records a credit or debit against a contact
func AddEntry(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}
	contactID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	cents, err := money.Parse(req.Amount)
	if err != nil {
		log.Warn("Rejected entry amount", zap.String("amount", req.Amount))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be a positive value"})
	}

	entry, err := entries.Add(uid, contactID, cents, req.Type, req.Note)
	if err != nil {
		return respondError(c, log, "add_entry", err)
	}
	prometheus.RecordEntryOperation("add")

	log.Info("Entry added successfully",
		zap.String("entry_id", entry.ID.String()),
		zap.String("contact_id", contactID.String()),
		zap.String("type", entry.Type),
		zap.Int64("amount_cents", entry.AmountCents))
	return c.JSON(http.StatusCreated, entry)
}

// ListEntries returns a contact's entries, newest first, optionally filtered
// by an inclusive created_at range (query params start and end, RFC3339 or
// date-only, either open-ended).
func ListEntries(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}
	contactID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	start, ok := parseQueryTime(c, "start", false)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start date"})
	}
	end, ok := parseQueryTime(c, "end", true)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end date"})
	}

	list, err := entries.List(uid, contactID, start, end)
	if err != nil {
		return respondError(c, log, "list_entries", err)
	}

	log.Info("Entries retrieved successfully",
		zap.String("contact_id", contactID.String()),
		zap.Int("count", len(list)))
	if list == nil {
		list = []model.LedgerEntry{}
	}
	return c.JSON(http.StatusOK, list)
}

// UpdateEntry overwrites an entry's amount, type, note, and displayed
// timestamp (the UI allows backdating)
func UpdateEntry(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}
	entryID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req EntryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.CreatedAt == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "created_at is required"})
	}

	cents, err := money.Parse(req.Amount)
	if err != nil {
		log.Warn("Rejected entry amount", zap.String("amount", req.Amount))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be a positive value"})
	}

	if err := entries.Update(uid, entryID, cents, req.Type, req.Note, *req.CreatedAt); err != nil {
		return respondError(c, log, "update_entry", err)
	}
	prometheus.RecordEntryOperation("update")

	log.Info("Entry updated successfully", zap.String("entry_id", entryID.String()))
	return c.JSON(http.StatusOK, echo.Map{"message": "Entry updated successfully"})
}

// DeleteEntry hard-deletes an entry; it vanishes from every aggregate
func DeleteEntry(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}
	entryID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := entries.Delete(uid, entryID); err != nil {
		return respondError(c, log, "delete_entry", err)
	}
	prometheus.RecordEntryOperation("delete")

	log.Info("Entry deleted successfully", zap.String("entry_id", entryID.String()))
	return c.JSON(http.StatusOK, echo.Map{"message": "Entry deleted successfully"})
}

// parseQueryTime reads an optional time query parameter, accepting RFC3339
// or date-only values. A date-only value snaps to midnight, or to the last
// instant of that day when endOfDay is set, so a calendar end bound keeps
// the whole day. The second return is false on malformed input.
func parseQueryTime(c echo.Context, name string, endOfDay bool) (*time.Time, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t, true
	}
	return nil, false
}
