package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "ellevate-booking/internal/handler/dto/request"
	resdto "ellevate-booking/internal/handler/dto/response"
	"ellevate-booking/internal/handler/middleware"
	"ellevate-booking/internal/pkg/errs"
	"ellevate-booking/internal/usecase/commands"
	"ellevate-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SlotHandler struct {
	scheduleCommands commands.ScheduleCommands
	slotQueries      queries.SlotQueries
}

func NewSlotHandler(scheduleCommands commands.ScheduleCommands, slotQueries queries.SlotQueries) *SlotHandler {
	return &SlotHandler{
		scheduleCommands: scheduleCommands,
		slotQueries:      slotQueries,
	}
}

// @Summary List training slots
// @Description List slots with live availability for a day or a week
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param date query string false "Single day (YYYY-MM-DD)"
// @Param week query int false "Week offset relative to the current week"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /slots [get]
func (h *SlotHandler) GetSlots(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var query reqdto.ListSlotsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	params := queries.SlotListParams{WeekOffset: query.Week}
	if query.Date != "" {
		date, err := time.Parse("2006-01-02", query.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date format, expected YYYY-MM-DD",
			})
			return
		}
		params.Date = &date
	}

	views, err := h.slotQueries.ListSlots(c.Request.Context(), actor, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.SlotResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromSlotView(v)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get training slot
// @Description Get one slot with live availability
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 200 {object} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /slots/{id} [get]
func (h *SlotHandler) GetSlot(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid slot ID format",
		})
		return
	}

	view, err := h.slotQueries.GetSlot(c.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Training slot not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlotView(view))
}

// @Summary Generate weekly schedule
// @Description Materialize the recurring training template for a week (admin only)
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.GenerateScheduleRequest true "Schedule generation request"
// @Success 201 {object} resdto.GenerateScheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /slots [post]
func (h *SlotHandler) GenerateSchedule(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.scheduleCommands.GenerateWeek(c.Request.Context(), actor, req.Week)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.GenerateScheduleResponse{
		WeekStart: result.WeekStart.Format("2006-01-02"),
		Created:   result.Created,
	})
}
