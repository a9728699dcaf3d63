package services

import (
	"tourhub_backend/internal/repositories"
	"tourhub_backend/pkg/apperrors"
)

type TourService interface {
	Stats() ([]repositories.DifficultyStats, error)
	MonthlyPlan(year int) ([]repositories.MonthlyPlanEntry, error)
}

type TourServiceImpl struct {
	tours repositories.TourRepository
}

func NewTourService(tours repositories.TourRepository) TourService {
	return &TourServiceImpl{tours: tours}
}

func (s *TourServiceImpl) Stats() ([]repositories.DifficultyStats, error) {
	stats, err := s.tours.Stats()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

func (s *TourServiceImpl) MonthlyPlan(year int) ([]repositories.MonthlyPlanEntry, error) {
	if year < 1900 || year > 2200 {
		return nil, apperrors.NewBadRequestError("Invalid year")
	}
	plan, err := s.tours.MonthlyPlan(year)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}
