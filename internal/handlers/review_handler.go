package handlers

import (
	"github.com/gin-gonic/gin"

	"tourhub_backend/internal/middleware"
	"tourhub_backend/internal/models"
	"tourhub_backend/pkg/apperrors"
)

// ReviewHandler is the CRUD factory configured for the nested review
// collection: listings scope to the tour in the path, and creates fill the
// tour and author ids before validation.
type ReviewHandler struct {
	*CRUD[models.Review]
}

func NewReviewHandler(crud *CRUD[models.Review]) *ReviewHandler {
	crud.WithParent("tourID", "tour_id").
		WithBeforeCreate(setReviewIDs)
	return &ReviewHandler{CRUD: crud}
}

// setReviewIDs takes the tour from the path when nested and always pins the
// author to the session, so clients cannot review as someone else.
func setReviewIDs(c *gin.Context, review *models.Review) error {
	if tourID := c.Param("tourID"); tourID != "" {
		review.TourID = tourID
	}

	user := middleware.CurrentUser(c)
	if user == nil {
		return apperrors.ErrNotLoggedIn
	}
	review.UserID = user.ID
	return nil
}
