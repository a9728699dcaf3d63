package repositories

import (
	"gorm.io/gorm"
)

// DifficultyStats is one row of the tour-stats aggregation.
type DifficultyStats struct {
	Difficulty string  `json:"difficulty"`
	NumTours   int64   `json:"num_tours"`
	NumRatings int64   `json:"num_ratings"`
	AvgRating  float64 `json:"avg_rating"`
	AvgPrice   float64 `json:"avg_price"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
}

// MonthlyPlanEntry is one row of the yearly starts aggregation.
type MonthlyPlanEntry struct {
	Month     int    `json:"month"`
	NumStarts int64  `json:"num_starts"`
	Tours     string `json:"tours"` // comma-joined tour names
}

type TourRepository interface {
	Stats() ([]DifficultyStats, error)
	MonthlyPlan(year int) ([]MonthlyPlanEntry, error)
}

type TourRepositoryImpl struct {
	db *gorm.DB
}

func NewTourRepository(db *gorm.DB) TourRepository {
	return &TourRepositoryImpl{db: db}
}

// Stats aggregates well-rated tours grouped by difficulty.
func (r *TourRepositoryImpl) Stats() ([]DifficultyStats, error) {
	var stats []DifficultyStats
	err := r.db.Raw(`
		SELECT difficulty,
		       COUNT(*)                 AS num_tours,
		       SUM(ratings_quantity)    AS num_ratings,
		       AVG(ratings_average)     AS avg_rating,
		       AVG(price)               AS avg_price,
		       MIN(price)               AS min_price,
		       MAX(price)               AS max_price
		FROM tours
		WHERE ratings_average >= 4.5 AND secret_tour = false
		GROUP BY difficulty
		ORDER BY avg_price`).Scan(&stats).Error
	return stats, err
}

// MonthlyPlan unnests the start-date arrays and counts tour starts per month
// of the given year.
func (r *TourRepositoryImpl) MonthlyPlan(year int) ([]MonthlyPlanEntry, error) {
	var plan []MonthlyPlanEntry
	err := r.db.Raw(`
		SELECT EXTRACT(MONTH FROM start)::int AS month,
		       COUNT(*)                       AS num_starts,
		       STRING_AGG(name, ',')          AS tours
		FROM (
			SELECT name, unnest(start_dates)::timestamptz AS start
			FROM tours
			WHERE secret_tour = false
		) starts
		WHERE EXTRACT(YEAR FROM start)::int = ?
		GROUP BY month
		ORDER BY num_starts DESC`, year).Scan(&plan).Error
	return plan, err
}
