package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MayankXDev13/ledger-x/internal/ledger"
	"github.com/MayankXDev13/ledger-x/internal/model"
	"github.com/MayankXDev13/ledger-x/pkg/logger"
	"github.com/MayankXDev13/ledger-x/prometheus"
)

// TagRequest defines the structure for tag creation/update requests
type TagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TagAPI serves one tag namespace. Two instances exist: contact tags and
// transaction tags share the same surface over independent tables.
type TagAPI struct {
	store     *ledger.TagStore
	namespace string
}

// List returns all of the user's tags in this namespace, name ascending
func (a *TagAPI) List(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}

	tags, err := a.store.List(uid)
	if err != nil {
		return respondError(c, log, a.namespace+"_tag_list", err)
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	return c.JSON(http.StatusOK, tags)
}

// Create adds a new tag. Duplicate names are allowed; an empty color falls
// back to the first palette entry.
func (a *TagAPI) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req TagRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	tag, err := a.store.Create(uid, req.Name, req.Color)
	if err != nil {
		return respondError(c, log, a.namespace+"_tag_create", err)
	}
	prometheus.RecordTagOperation(a.namespace, "create")

	log.Info("Tag created successfully",
		zap.String("tag_id", tag.ID.String()),
		zap.String("namespace", a.namespace),
		zap.String("name", tag.Name))
	return c.JSON(http.StatusCreated, tag)
}

// Update overwrites a tag's name and color
func (a *TagAPI) Update(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}
	tagID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req TagRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if err := a.store.Update(uid, tagID, req.Name, req.Color); err != nil {
		return respondError(c, log, a.namespace+"_tag_update", err)
	}
	prometheus.RecordTagOperation(a.namespace, "update")

	log.Info("Tag updated successfully",
		zap.String("tag_id", tagID.String()),
		zap.String("namespace", a.namespace))
	return c.JSON(http.StatusOK, echo.Map{"message": "Tag updated successfully"})
}

// Usage reports how many entities currently reference the tag, so callers
// can warn the user before deleting it
func (a *TagAPI) Usage(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}
	tagID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	count, err := a.store.UsageCount(uid, tagID)
	if err != nil {
		return respondError(c, log, a.namespace+"_tag_usage", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"usage_count": count})
}

// Delete removes a tag and all of its association rows
func (a *TagAPI) Delete(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}
	tagID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := a.store.Delete(uid, tagID); err != nil {
		return respondError(c, log, a.namespace+"_tag_delete", err)
	}
	prometheus.RecordTagOperation(a.namespace, "delete")

	log.Info("Tag deleted successfully",
		zap.String("tag_id", tagID.String()),
		zap.String("namespace", a.namespace))
	return c.JSON(http.StatusOK, echo.Map{"message": "Tag deleted successfully"})
}
