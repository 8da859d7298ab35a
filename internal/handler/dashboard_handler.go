package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/MayankXDev13/ledger-x/pkg/logger"
	"github.com/MayankXDev13/ledger-x/pkg/money"
	"github.com/MayankXDev13/ledger-x/pkg/timefmt"
	"github.com/MayankXDev13/ledger-x/prometheus"
)

// DashboardMetrics responds with the portfolio-wide figures, both as raw
// paise and display-formatted. Every number is derived from current entries
// at call time.
func DashboardMetrics(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("dashboard_aggregates")(time.Now())

	totalBalance, err := balances.PortfolioBalance(uid)
	if err != nil {
		return respondError(c, log, "dashboard_metrics", err)
	}
	pendingDue, err := balances.PendingDue(uid)
	if err != nil {
		return respondError(c, log, "dashboard_metrics", err)
	}
	monthNet, err := balances.MonthToDateNet(uid)
	if err != nil {
		return respondError(c, log, "dashboard_metrics", err)
	}
	customers, err := balances.CustomerCount(uid)
	if err != nil {
		return respondError(c, log, "dashboard_metrics", err)
	}

	log.Info("Dashboard metrics computed",
		zap.String("user_id", uid.String()),
		zap.Int64("total_balance_cents", totalBalance),
		zap.Int64("pending_due_cents", pendingDue))
	return c.JSON(http.StatusOK, echo.Map{
		"total_balance_cents": totalBalance,
		"total_balance":       money.Format(totalBalance),
		"pending_due_cents":   pendingDue,
		"pending_due":         money.Format(pendingDue),
		"month_net_cents":     monthNet,
		"month_net":           money.Format(monthNet),
		"total_customers":     customers,
	})
}

// RecentTransactions lists the newest entries across the user's live
// contacts, with display-formatted amount and recency.
func RecentTransactions(c echo.Context) error {
	log := logger.FromEcho(c)

	uid, err := userID(c)
	if err != nil {
		return err
	}

	limit := 5
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}

	recent, err := balances.RecentEntries(uid, limit)
	if err != nil {
		return respondError(c, log, "recent_transactions", err)
	}

	now := time.Now()
	out := make([]echo.Map, 0, len(recent))
	for _, e := range recent {
		out = append(out, echo.Map{
			"id":           e.ID,
			"amount_cents": e.AmountCents,
			"amount":       money.Format(e.AmountCents),
			"type":         e.Type,
			"note":         e.Note,
			"created_at":   e.CreatedAt,
			"recency":      timefmt.Relative(e.CreatedAt, now),
			"contact_name": e.ContactName,
		})
	}
	return c.JSON(http.StatusOK, out)
}
