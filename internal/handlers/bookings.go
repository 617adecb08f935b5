package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookline/api/internal/middleware"
	"bookline/api/internal/models"
	"bookline/api/internal/service"
)

type bookingResponse struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	TimeSlot  string    `json:"timeSlot"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func toBookingResponse(b models.Booking) bookingResponse {
	return bookingResponse{
		ID:        b.ID,
		Date:      b.Date,
		TimeSlot:  b.TimeSlot,
		Location:  b.Location,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
	}
}

type createBookingRequest struct {
	Date          string `json:"date"`
	TimeSlot      string `json:"timeSlot"`
	City          string `json:"city"`
	Address       string `json:"address"`
	PhoneNumber   string `json:"phoneNumber"`
	PaymentMethod string `json:"paymentMethod"`
}

func (h HandlerSet) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), c.GetString(middleware.ContextUserID), service.CreateBookingInput{
		Date:          req.Date,
		TimeSlot:      req.TimeSlot,
		City:          req.City,
		Address:       req.Address,
		PhoneNumber:   req.PhoneNumber,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// Contact details are echoed back once but never persisted; clients
	// cannot fetch them again later.
	c.JSON(http.StatusCreated, gin.H{
		"ok":      true,
		"booking": toBookingResponse(booking),
		"bookingDetails": gin.H{
			"phoneNumber":   req.PhoneNumber,
			"paymentMethod": req.PaymentMethod,
		},
	})
}

func (h HandlerSet) ListBookings(c *gin.Context) {
	bookings, err := h.bookings.List(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, toBookingResponse(b))
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "bookings": resp})
}

func (h HandlerSet) DeleteBooking(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "booking id required"})
		return
	}

	if err := h.bookings.Delete(c.Request.Context(), c.GetString(middleware.ContextUserID), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
