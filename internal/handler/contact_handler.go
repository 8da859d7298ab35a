package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MayankXDev13/ledger-x/internal/ledger"
	"github.com/MayankXDev13/ledger-x/pkg/logger"
	"github.com/MayankXDev13/ledger-x/prometheus"
)

// ContactRequest defines the structure for contact creation/update requests
type ContactRequest struct {
	Name   string      `json:"name"`
	Phone  string      `json:"phone"`
	TagIDs []uuid.UUID `json:"tag_ids"`
}

// CreateContact creates a new contact, or restores a tombstoned one whose
// phone number matches
func CreateContact(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	log.Info("Creating contact",
		zap.String("user_id", uid.String()),
		zap.Int("tag_count", len(req.TagIDs)))

	contact, err := contacts.CreateOrRestore(uid, req.Name, req.Phone, req.TagIDs)
	if err != nil && !errors.Is(err, ledger.ErrTagAssignFailed) {
		return respondError(c, log, "create_contact", err)
	}
	prometheus.RecordContactOperation("create")

	if err != nil {
		// Contact write succeeded; only the tag association step failed.
		// Surface it as a secondary warning rather than rolling back.
		log.Warn("Contact saved but tag assignment failed",
			zap.String("contact_id", contact.ID.String()),
			zap.Error(err))
		return c.JSON(http.StatusCreated, echo.Map{
			"contact": contact,
			"warning": "contact saved, but assigning tags failed",
		})
	}

	log.Info("Contact created successfully",
		zap.String("contact_id", contact.ID.String()),
		zap.String("user_id", uid.String()))
	return c.JSON(http.StatusCreated, echo.Map{"contact": contact})
}

// ListContacts returns the user's live contacts
func ListContacts(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}

	list, err := contacts.List(uid)
	if err != nil {
		return respondError(c, log, "list_contacts", err)
	}

	log.Info("Contacts retrieved successfully",
		zap.Int("count", len(list)),
		zap.String("user_id", uid.String()))
	return c.JSON(http.StatusOK, list)
}

// GetContact returns one contact together with its tags and derived balance
func GetContact(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}
	contactID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	contact, err := contacts.Get(uid, contactID)
	if err != nil {
		return respondError(c, log, "get_contact", err)
	}

	tags, err := contactTags.ListFor(contactID)
	if err != nil {
		return respondError(c, log, "get_contact", err)
	}

	balance, err := balances.ContactBalance(contactID)
	if err != nil {
		return respondError(c, log, "get_contact", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"contact": contact,
		"tags":    tags,
		"balance": balance,
	})
}

// UpdateContact updates a contact's name and phone
func UpdateContact(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}
	contactID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := contacts.Update(uid, contactID, req.Name, req.Phone); err != nil {
		return respondError(c, log, "update_contact", err)
	}
	prometheus.RecordContactOperation("update")

	log.Info("Contact updated successfully",
		zap.String("contact_id", contactID.String()),
		zap.String("user_id", uid.String()))
	return c.JSON(http.StatusOK, echo.Map{"message": "Contact updated successfully"})
}

// DeleteContact tombstones a contact; its entries stay queryable by id
func DeleteContact(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}
	contactID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := contacts.SoftDelete(uid, contactID); err != nil {
		return respondError(c, log, "delete_contact", err)
	}
	prometheus.RecordContactOperation("delete")

	log.Info("Contact deleted successfully",
		zap.String("contact_id", contactID.String()),
		zap.String("user_id", uid.String()))
	return c.JSON(http.StatusOK, echo.Map{"message": "Contact deleted successfully"})
}

// GetContactBalance returns the derived balance summary for a contact
func GetContactBalance(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}
	contactID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if _, err := contacts.Get(uid, contactID); err != nil {
		return respondError(c, log, "contact_balance", err)
	}

	balance, err := balances.ContactBalance(contactID)
	if err != nil {
		return respondError(c, log, "contact_balance", err)
	}
	return c.JSON(http.StatusOK, balance)
}

// GetContactTagTotals returns the signed per-tag subtotals of a contact's entries
func GetContactTagTotals(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}
	contactID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if _, err := contacts.Get(uid, contactID); err != nil {
		return respondError(c, log, "contact_tag_totals", err)
	}

	totals, err := balances.TagTotals(contactID)
	if err != nil {
		return respondError(c, log, "contact_tag_totals", err)
	}
	if totals == nil {
		totals = []ledger.TagTotal{}
	}
	return c.JSON(http.StatusOK, totals)
}
