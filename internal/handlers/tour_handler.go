package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tourhub_backend/internal/models"
	"tourhub_backend/internal/services"
	"tourhub_backend/pkg/apperrors"
)

type TourHandler struct {
	*CRUD[models.Tour]
	tours services.TourService
}

func NewTourHandler(crud *CRUD[models.Tour], tours services.TourService) *TourHandler {
	return &TourHandler{CRUD: crud, tours: tours}
}

// TopTours is the "top 5 cheap" alias: it pins the query params and reuses
// the regular listing.
// GET /api/v1/tours/top-5-cheap
func (h *TourHandler) TopTours(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Set("limit", "5")
	q.Set("sort", "-ratings_average,price")
	q.Set("fields", "name,price,ratings_average,summary,difficulty")
	c.Request.URL.RawQuery = q.Encode()

	h.GetAll(c)
}

// Stats aggregates well-rated tours grouped by difficulty.
// GET /api/v1/tours/tour-stats
func (h *TourHandler) Stats(c *gin.Context) {
	stats, err := h.tours.Stats()
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	Success(c, http.StatusOK, gin.H{"stats": stats})
}

// MonthlyPlan counts tour starts per month in a year.
// GET /api/v1/tours/monthly-plan/:year
func (h *TourHandler) MonthlyPlan(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid year"))
		return
	}

	plan, planErr := h.tours.MonthlyPlan(year)
	if planErr != nil {
		apperrors.HandleError(c, planErr)
		return
	}
	Success(c, http.StatusOK, gin.H{"plan": plan})
}
