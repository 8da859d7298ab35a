package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MayankXDev13/ledger-x/internal/ledger"
	mid "github.com/MayankXDev13/ledger-x/internal/middleware"
	"github.com/MayankXDev13/ledger-x/pkg/logger"
)

// Stores used by the handlers, wired once at startup.
var (
	contacts        *ledger.ContactStore
	entries         *ledger.EntryStore
	contactTags     *ledger.TagStore
	transactionTags *ledger.TagStore
	balances        *ledger.BalanceStore

	// ContactTagAPI and TransactionTagAPI serve the two tag namespaces
	ContactTagAPI     *TagAPI
	TransactionTagAPI *TagAPI
)

// Init wires the handler package to the database
func Init(db *gorm.DB) {
	contactTags = ledger.NewContactTagStore(db)
	transactionTags = ledger.NewTransactionTagStore(db)
	contacts = ledger.NewContactStore(db, contactTags)
	entries = ledger.NewEntryStore(db)
	balances = ledger.NewBalanceStore(db)

	ContactTagAPI = &TagAPI{store: contactTags, namespace: "contact"}
	TransactionTagAPI = &TagAPI{store: transactionTags, namespace: "transaction"}
}

// userID extracts the authenticated user from the context. The returned
// error is non-nil when the auth middleware did not run, so callers can
// propagate it and stop; echo's error handler writes the 401.
func userID(c echo.Context) (uuid.UUID, error) {
	id, ok := mid.GetUserIDFromContext(c)
	if !ok {
		logger.FromEcho(c).Warn("Missing user_id in context")
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "user identity is required")
	}
	return id, nil
}

// pathID parses a uuid path parameter. Malformed input yields a non-nil
// 400 error for the caller to propagate; no handler logic may run after it.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		logger.FromEcho(c).Warn("Malformed id in path",
			zap.String("param", name),
			zap.String("value", c.Param(name)))
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// respondError maps ledger errors onto HTTP statuses. Validation problems
// and bad amounts are 400, duplicate phones 409, missing rows 404, anything
// else a generic 500. Write failures are never swallowed.
func respondError(c echo.Context, log *zap.Logger, op string, err error) error {
	var verr *ledger.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Warn("Validation failed",
			zap.String("operation", op),
			zap.String("field", verr.Field),
			zap.String("reason", verr.Message))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Message})
	case errors.Is(err, ledger.ErrInvalidAmount):
		log.Warn("Invalid amount", zap.String("operation", op))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "amount must be a positive value"})
	case errors.Is(err, ledger.ErrDuplicatePhone):
		log.Warn("Duplicate phone", zap.String("operation", op))
		return c.JSON(http.StatusConflict, echo.Map{"error": "A customer with this phone number already exists"})
	case errors.Is(err, ledger.ErrNotFound):
		log.Warn("Target not found", zap.String("operation", op))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	default:
		log.Error("Operation failed", zap.String("operation", op), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "operation failed"})
	}
}
