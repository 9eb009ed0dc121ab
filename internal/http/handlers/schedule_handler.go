package handlers

import (
	"strconv"
	"time"

	"glaneur/internal/domain"
	applog "glaneur/internal/log"
	"glaneur/internal/services"
	"glaneur/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ScheduleHandler struct {
	Schedule   *services.ScheduleService
	Stats      *services.StatsService
	BusinessID string
}

type bulkInput struct {
	Action       string `json:"action"` // close-all | copy-weekdays
	SourceDay    int    `json:"sourceDay"`
	BusinessType string `json:"businessType"`
}

func (h *ScheduleHandler) List(c *fiber.Ctx) error {
	schedules, err := h.Schedule.List(h.BusinessID)
	if err != nil {
		return respondErr(c, "schedule.list", err)
	}
	if schedules == nil {
		schedules = []domain.Schedule{}
	}
	return c.JSON(schedules)
}

func (h *ScheduleHandler) Upsert(c *fiber.Ctx) error {
	var in services.ScheduleInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed JSON body")
	}
	sc, err := h.Schedule.Upsert(h.BusinessID, in)
	if err != nil {
		return respondErr(c, "schedule.upsert", err)
	}
	applog.Audit(c, "schedule.upsert", map[string]any{"day": sc.DayOfWeek, "open": sc.IsOpen})
	return c.JSON(sc)
}

func (h *ScheduleHandler) Day(c *fiber.Ctx) error {
	dow, err := strconv.Atoi(c.Params("dow"))
	if err != nil || !validate.DayOfWeek(dow) {
		return badRequest(c, "day must be 0 (Sunday) to 6 (Saturday)")
	}
	sc, err := h.Schedule.GetByDay(h.BusinessID, dow)
	if err != nil {
		return respondErr(c, "schedule.day", err)
	}
	return c.JSON(sc)
}

// Date returns the day view for one calendar date, with closures applied.
func (h *ScheduleHandler) Date(c *fiber.Ctx) error {
	raw, ok := validate.Date(c.Params("date"))
	if !ok {
		return badRequest(c, "date must be YYYY-MM-DD")
	}
	date, _ := time.Parse("2006-01-02", raw)
	view, err := h.Stats.ScheduleForDate(h.BusinessID, date)
	if err != nil {
		return respondErr(c, "schedule.date", err)
	}
	return c.JSON(view)
}

// Bulk runs a multi-day write and always reports per-day outcomes, partial
// failures included.
func (h *ScheduleHandler) Bulk(c *fiber.Ctx) error {
	var in bulkInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "malformed JSON body")
	}

	switch in.Action {
	case "close-all":
		outcomes := h.Schedule.CloseAll(h.BusinessID, in.BusinessType)
		applog.Audit(c, "schedule.close-all", map[string]any{"results": outcomes})
		return c.JSON(fiber.Map{"results": outcomes})
	case "copy-weekdays":
		outcomes, err := h.Schedule.ApplyToWeekdays(h.BusinessID, in.SourceDay)
		if err != nil {
			return respondErr(c, "schedule.copy-weekdays", err)
		}
		applog.Audit(c, "schedule.copy-weekdays", map[string]any{"source": in.SourceDay})
		return c.JSON(fiber.Map{"results": outcomes})
	default:
		return badRequest(c, "action must be close-all or copy-weekdays")
	}
}
