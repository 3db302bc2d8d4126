package turf

import (
	"errors"
	"net/http"
	"strconv"

	"turfbook/internal/api"
	"turfbook/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service  Service
	notifier SlotNotifier
}

func NewHandler(service Service, notifier SlotNotifier) *Handler {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Handler{
		service:  service,
		notifier: notifier,
	}
}

func parseID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		api.Fail(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

// @Summary      List turfs
// @Tags         turfs
// @Produce      json
// @Success      200 {object} turf.TurfListResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /api/ [get]
func (h *Handler) ListTurfs(c *gin.Context) {
	turfs, err := h.service.ListTurfs(c.Request.Context())
	if err != nil {
		logger.WithError(err).Error("list turfs failed")
		api.Fail(c, http.StatusInternalServerError, "Failed to fetch turfs")
		return
	}

	c.JSON(http.StatusOK, TurfListResponse{Turfs: turfs})
}

// @Summary      Turf detail
// @Tags         turfs
// @Produce      json
// @Param        id path int true "Turf ID"
// @Success      200 {object} turf.TurfResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/turf/{id} [get]
func (h *Handler) GetTurf(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	t, err := h.service.GetTurf(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to fetch turf")
		return
	}

	c.JSON(http.StatusOK, TurfResponse{Turf: t})
}

// @Summary      Slots of a turf
// @Description  Ordered by start time. The live channel pushes the same list.
// @Tags         turfs
// @Produce      json
// @Param        id path int true "Turf ID"
// @Success      200 {object} turf.SlotListResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/turf/{id}/slots [get]
func (h *Handler) ListSlots(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	slots, err := h.service.ListSlots(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to fetch slots")
		return
	}

	c.JSON(http.StatusOK, SlotListResponse{Slots: slots})
}

// @Summary      Create a turf
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body turf.CreateTurfRequest true "Turf payload"
// @Success      201 {object} turf.Turf
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Router       /api/admin/turfs [post]
func (h *Handler) CreateTurf(c *gin.Context) {
	var req CreateTurfRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	t, err := h.service.CreateTurf(c.Request.Context(), req)
	if err != nil {
		logger.WithError(err).Error("create turf failed")
		api.Fail(c, http.StatusInternalServerError, "Failed to create turf")
		return
	}

	c.JSON(http.StatusCreated, t)
}

// @Summary      Create a slot
// @Description  The slot lasts one hour from start_time.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path int true "Turf ID"
// @Param        request body turf.CreateSlotRequest true "Slot payload"
// @Success      201 {object} turf.Slot
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/turfs/{id}/slots [post]
func (h *Handler) CreateSlot(c *gin.Context) {
	turfID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req CreateSlotRequest
	if !api.BindAndValidate(c, &req) {
		return
	}

	ctx := c.Request.Context()
	slot, err := h.service.CreateSlot(ctx, turfID, req)
	if err != nil {
		h.fail(c, err, "Failed to create slot")
		return
	}

	h.notifier.SlotsChanged(ctx, turfID)
	c.JSON(http.StatusCreated, slot)
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrTurfNotFound):
		api.Fail(c, http.StatusNotFound, "Turf not found")
	case errors.Is(err, ErrSlotInPast):
		api.Fail(c, http.StatusBadRequest, "Slot must start in the future")
	default:
		logger.WithError(err).Error(fallback)
		api.Fail(c, http.StatusInternalServerError, fallback)
	}
}
