package api

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v3"

	"titan/internal/ledger"
	"titan/internal/metrics"
	"titan/internal/stats"
	"titan/internal/topics"
	"titan/internal/validation"
)

// TopicHandler serves topic selection, stats and planning via JSON API.
type TopicHandler struct {
	selector *topics.Selector
	ledger   ledger.Ledger
	planner  *topics.Planner
	now      func() time.Time
	loc      *time.Location
}

// NewTopicHandler creates a new API topic handler.
func NewTopicHandler(selector *topics.Selector, l ledger.Ledger, planner *topics.Planner, now func() time.Time, loc *time.Location) *TopicHandler {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &TopicHandler{selector: selector, ledger: l, planner: planner, now: now, loc: loc}
}

// Next selects and records the next topic.
func (h *TopicHandler) Next(c fiber.Ctx) error {
	rec, err := h.selector.SelectNextTopic(c.Context())
	if err != nil {
		slog.Error("topic selection failed", "error", err)
		return jsonError(c, statusFor(err), "failed to select topic")
	}

	metrics.RecordTopicSelected(rec.Category)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "ok",
		"data":   rec,
	})
}

// Stats summarises the ledger.
func (h *TopicHandler) Stats(c fiber.Ctx) error {
	u, err := h.ledger.Usage(c.Context())
	if err != nil {
		slog.Error("failed to load ledger", "error", err)
		return jsonError(c, statusFor(err), "failed to load stats")
	}
	return jsonSuccess(c, stats.Build(u))
}

// Plan returns the curated plan for ?date (default today) with ?count entries.
func (h *TopicHandler) Plan(c fiber.Ctx) error {
	date, err := validation.ParsePlanDate(c.Query("date"), h.now(), h.loc)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	count, err := validation.ParseCount(c.Query("count"), 5, validation.MaxPlanCount)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	return jsonSuccess(c, fiber.Map{
		"date":   date.Format("2006-01-02"),
		"topics": h.planner.Plan(date, count),
	})
}

// Reset forgets the used keywords of :category.
func (h *TopicHandler) Reset(c fiber.Ctx) error {
	raw, err := url.PathUnescape(c.Params("category"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid category")
	}
	category := validation.NormalizeCategory(raw)
	if valid, msg := validation.ValidateCategory(category); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	removed, err := h.ledger.ResetCategory(c.Context(), category)
	if err != nil {
		slog.Error("category reset failed", "category", category, "error", err)
		return jsonError(c, statusFor(err), "failed to reset category")
	}

	slog.Info("category reset", "category", category, "removed", removed)
	return jsonSuccess(c, fiber.Map{
		"category": category,
		"removed":  removed,
	})
}

// statusFor maps ledger errors to HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}
