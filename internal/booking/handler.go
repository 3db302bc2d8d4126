package booking

import (
	"errors"
	"net/http"
	"strconv"

	"turfbook/internal/api"
	"turfbook/internal/auth"
	"turfbook/internal/logger"
	"turfbook/internal/metrics"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		api.Fail(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSlotNotFound), errors.Is(err, ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSlotAlreadyBooked):
		return http.StatusConflict
	case errors.Is(err, ErrSlotInPast):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.WithError(err).Error("booking request failed", "path", c.FullPath())
		api.Fail(c, status, fallback)
		return
	}
	api.Fail(c, status, Message(err))
}

// @Summary      Booking page
// @Description  Slot, turf and the advance amount due to confirm it.
// @Tags         bookings
// @Produce      json
// @Param        slotId path int true "Slot ID"
// @Success      200 {object} booking.BookingPage
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/book/{slotId} [get]
func (h *Handler) GetBookingPage(c *gin.Context) {
	slotID, ok := paramID(c, "slotId")
	if !ok {
		return
	}

	page, err := h.service.GetBookingPage(c.Request.Context(), slotID)
	if err != nil {
		h.fail(c, err, "Failed to load slot")
		return
	}

	c.JSON(http.StatusOK, page)
}

// @Summary      Book a slot
// @Description  Reserves the slot with the advance marked paid.
// @Tags         bookings
// @Produce      json
// @Param        slotId path int true "Slot ID"
// @Success      200 {object} booking.BookSlotResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /api/book/{slotId} [post]
func (h *Handler) BookSlot(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	slotID, ok := paramID(c, "slotId")
	if !ok {
		return
	}

	b, err := h.service.BookSlot(c.Request.Context(), userID, slotID)
	metrics.RecordBooking(Outcome(err), "http")
	if err != nil {
		h.fail(c, err, "Booking failed")
		return
	}

	c.JSON(http.StatusOK, BookSlotResponse{Success: true, Message: "Booking confirmed", Booking: b})
}

// @Summary      My bookings
// @Tags         user
// @Produce      json
// @Success      200 {object} booking.BookingListResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /api/user/dashboard [get]
// @Router       /api/user/bookings [get]
func (h *Handler) UserBookings(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		api.Fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	list, err := h.service.UserBookings(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, "Failed to fetch bookings")
		return
	}

	c.JSON(http.StatusOK, BookingListResponse{Bookings: list})
}

// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Success      200 {object} booking.DashboardStats
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Router       /api/admin/dashboard [get]
func (h *Handler) AdminDashboard(c *gin.Context) {
	stats, err := h.service.DashboardStats(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// @Summary      All bookings
// @Tags         admin
// @Produce      json
// @Success      200 {object} booking.BookingListResponse
// @Failure      403 {object} api.ErrorResponse
// @Router       /api/admin/bookings [get]
func (h *Handler) AllBookings(c *gin.Context) {
	list, err := h.service.AllBookings(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch bookings")
		return
	}

	c.JSON(http.StatusOK, BookingListResponse{Bookings: list})
}

// @Summary      Upcoming booked slots
// @Tags         admin
// @Produce      json
// @Success      200 {object} booking.BookingListResponse
// @Failure      403 {object} api.ErrorResponse
// @Router       /api/admin/upcoming [get]
func (h *Handler) UpcomingBookings(c *gin.Context) {
	list, err := h.service.UpcomingBookings(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch bookings")
		return
	}

	c.JSON(http.StatusOK, BookingListResponse{Bookings: list})
}

// @Summary      Mark a booking fully paid
// @Tags         admin
// @Produce      json
// @Param        id path int true "Booking ID"
// @Success      200 {object} booking.MarkPaidResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /api/admin/mark-paid/{id} [post]
func (h *Handler) MarkPaid(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	b, err := h.service.MarkPaid(c.Request.Context(), id, SourceAdmin)
	if err != nil {
		h.fail(c, err, "Failed to mark paid")
		return
	}

	c.JSON(http.StatusOK, MarkPaidResponse{Success: true, Message: "Marked as paid", Booking: b})
}
