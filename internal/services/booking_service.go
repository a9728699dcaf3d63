package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"tourhub_backend/internal/models"
	"tourhub_backend/internal/payment"
	"tourhub_backend/internal/repositories"
	"tourhub_backend/pkg/apperrors"
)

// CheckoutClient is the slice of the payment gateway the booking flow uses.
type CheckoutClient interface {
	CreateCheckoutSession(params payment.CheckoutParams) (*payment.CheckoutSession, error)
}

type BookingService interface {
	CheckoutSession(tourID string, user *models.User) (*payment.CheckoutSession, error)
	CreateBooking(tourID, userID string, price float64) (*models.Booking, error)
	MyBookings(userID string) ([]models.Booking, error)
}

type BookingServiceImpl struct {
	tours    *repositories.Repository[models.Tour]
	bookings *repositories.Repository[models.Booking]
	checkout CheckoutClient
	baseURL  string
}

func NewBookingService(
	tours *repositories.Repository[models.Tour],
	bookings *repositories.Repository[models.Booking],
	checkout CheckoutClient,
	baseURL string,
) BookingService {
	return &BookingServiceImpl{
		tours:    tours,
		bookings: bookings,
		checkout: checkout,
		baseURL:  baseURL,
	}
}

// CheckoutSession opens a payment session for one tour. The success URL
// carries tour, user and price so the redirect handler can record the
// booking; this goes away once the gateway webhook lands.
func (s *BookingServiceImpl) CheckoutSession(tourID string, user *models.User) (*payment.CheckoutSession, error) {
	tour, err := s.tours.FindByID(tourID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("tour", "No tour found with that ID")
		}
		return nil, apperrors.InternalError(err)
	}

	session, err := s.checkout.CreateCheckoutSession(payment.CheckoutParams{
		SuccessURL: fmt.Sprintf("%s/?tour=%s&user=%s&price=%v",
			s.baseURL, tour.ID, user.ID, tour.Price),
		CancelURL:         fmt.Sprintf("%s/api/v1/tours/%s", s.baseURL, tour.ID),
		CustomerEmail:     user.Email,
		ClientReferenceID: tour.ID,
		ProductName:       fmt.Sprintf("%s Tour", tour.Name),
		Description:       tour.Summary,
		ImageURL:          tour.ImageCover,
		AmountCents:       int64(math.Round(tour.Price * 100)),
		Quantity:          1,
	})
	if err != nil {
		return nil, apperrors.ErrPaymentFailed(err)
	}
	return session, nil
}

// CreateBooking records a paid booking after the checkout redirect.
func (s *BookingServiceImpl) CreateBooking(tourID, userID string, price float64) (*models.Booking, error) {
	if tourID == "" || userID == "" || price <= 0 {
		return nil, apperrors.NewBadRequestError("Missing booking details")
	}

	if _, err := uuid.Parse(tourID); err != nil {
		return nil, apperrors.NewBadRequestError("Invalid tour ID")
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperrors.NewBadRequestError("Invalid user ID")
	}

	booking := &models.Booking{
		TourID: tourID,
		UserID: userID,
		Price:  price,
		Paid:   true,
	}
	if err := s.bookings.Create(booking); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return booking, nil
}

// MyBookings lists the caller's bookings.
func (s *BookingServiceImpl) MyBookings(userID string) ([]models.Booking, error) {
	bookings, err := s.bookings.FindAll(nil, repositories.Scope{"user_id": userID})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return bookings, nil
}
