package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MayankXDev13/ledger-x/internal/model"
	"github.com/MayankXDev13/ledger-x/pkg/logger"
	"github.com/MayankXDev13/ledger-x/prometheus"
)

// ReplaceTagsRequest carries the full desired tag set for one entity. An
// empty list is a valid request that clears all associations.
type ReplaceTagsRequest struct {
	TagIDs []uuid.UUID `json:"tag_ids"`
}

// ListContactTagLinks returns the tags linked to a contact
func ListContactTagLinks(c echo.Context) error {
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
		return respondError(c, log, "list_contact_tags", err)
	}

	tags, err := contactTags.ListFor(contactID)
	if err != nil {
		return respondError(c, log, "list_contact_tags", err)
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	return c.JSON(http.StatusOK, tags)
}

// ReplaceContactTagLinks atomically swaps the contact's tag set
func ReplaceContactTagLinks(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}
	contactID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ReplaceTagsRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if _, err := contacts.Get(uid, contactID); err != nil {
		return respondError(c, log, "replace_contact_tags", err)
	}

	if err := contactTags.Replace(uid, contactID, req.TagIDs); err != nil {
		return respondError(c, log, "replace_contact_tags", err)
	}
	prometheus.RecordTagOperation("contact", "replace")

	log.Info("Contact tags replaced",
		zap.String("contact_id", contactID.String()),
		zap.Int("tag_count", len(req.TagIDs)))
	return c.JSON(http.StatusOK, echo.Map{"message": "Tags updated successfully"})
}

// AttachContactTag links a single tag to a contact; re-adding is a no-op
func AttachContactTag(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}
	contactID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	tagID, err := pathID(c, "tagId")
	if err != nil {
		return err
	}

	if _, err := contacts.Get(uid, contactID); err != nil {
		return respondError(c, log, "attach_contact_tag", err)
	}
	if _, err := contactTags.Get(uid, tagID); err != nil {
		return respondError(c, log, "attach_contact_tag", err)
	}

	if err := contactTags.Attach(contactID, tagID); err != nil {
		return respondError(c, log, "attach_contact_tag", err)
	}
	prometheus.RecordTagOperation("contact", "attach")
	return c.JSON(http.StatusOK, echo.Map{"message": "Tag attached"})
}

// DetachContactTag removes a single tag link from a contact
func DetachContactTag(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}
	contactID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	tagID, err := pathID(c, "tagId")
	if err != nil {
		return err
	}

	if _, err := contacts.Get(uid, contactID); err != nil {
		return respondError(c, log, "detach_contact_tag", err)
	}

	if err := contactTags.Detach(contactID, tagID); err != nil {
		return respondError(c, log, "detach_contact_tag", err)
	}
	prometheus.RecordTagOperation("contact", "detach")
	return c.JSON(http.StatusOK, echo.Map{"message": "Tag detached"})
}

// ListTransactionTagLinks returns the tags linked to a ledger entry
func ListTransactionTagLinks(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}
	entryID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if _, err := entries.Get(uid, entryID); err != nil {
		return respondError(c, log, "list_transaction_tags", err)
	}

	tags, err := transactionTags.ListFor(entryID)
	if err != nil {
		return respondError(c, log, "list_transaction_tags", err)
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	return c.JSON(http.StatusOK, tags)
}

// ReplaceTransactionTagLinks atomically swaps a ledger entry's tag set
func ReplaceTransactionTagLinks(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}
	entryID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ReplaceTagsRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if _, err := entries.Get(uid, entryID); err != nil {
		return respondError(c, log, "replace_transaction_tags", err)
	}

	if err := transactionTags.Replace(uid, entryID, req.TagIDs); err != nil {
		return respondError(c, log, "replace_transaction_tags", err)
	}
	prometheus.RecordTagOperation("transaction", "replace")

	log.Info("Transaction tags replaced",
		zap.String("entry_id", entryID.String()),
		zap.Int("tag_count", len(req.TagIDs)))
	return c.JSON(http.StatusOK, echo.Map{"message": "Tags updated successfully"})
}
