package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tourhub_backend/internal/models"
	"tourhub_backend/internal/services"
	"tourhub_backend/pkg/apperrors"
)

type BookingHandler struct {
	*CRUD[models.Booking]
	bookings services.BookingService
}

func NewBookingHandler(crud *CRUD[models.Booking], bookings services.BookingService) *BookingHandler {
	return &BookingHandler{CRUD: crud, bookings: bookings}
}

// CheckoutSession opens a payment session for a tour.
// GET /api/v1/bookings/checkoutSession/:tourID
func (h *BookingHandler) CheckoutSession(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	session, err := h.bookings.CheckoutSession(c.Param("tourID"), user)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	Success(c, http.StatusOK, gin.H{"session": session})
}

// MyBookings lists the caller's bookings.
// GET /api/v1/bookings/myBookings
func (h *BookingHandler) MyBookings(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	bookings, err := h.bookings.MyBookings(user.ID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	SuccessList(c, len(bookings), gin.H{"bookings": bookings})
}

// RecordCheckout creates a booking from the checkout success redirect
// params. Temporary until the gateway webhook replaces it; anyone hitting
// the URL with valid ids books without payment, which is the accepted gap.
// GET /api/v1/bookings/tempBookingMethod
func (h *BookingHandler) RecordCheckout(c *gin.Context) {
	tourID := c.Query("tour")
	userID := c.Query("user")
	price, err := strconv.ParseFloat(c.Query("price"), 64)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing booking details"))
		return
	}

	booking, bookErr := h.bookings.CreateBooking(tourID, userID, price)
	if bookErr != nil {
		apperrors.HandleError(c, bookErr)
		return
	}
	Success(c, http.StatusCreated, gin.H{"booking": booking})
}
