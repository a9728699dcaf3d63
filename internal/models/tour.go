package models

import (
	"strings"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Tour struct {
	BaseModel
	Name            string         `gorm:"uniqueIndex;not null" json:"name" validate:"required,min=10,max=40"`
	Slug            string         `gorm:"index" json:"slug"`
	Duration        int            `gorm:"not null" json:"duration" validate:"required,min=1"`
	MaxGroupSize    int            `gorm:"not null" json:"max_group_size" validate:"required,min=1"`
	Difficulty      Difficulty     `gorm:"type:varchar(20);not null" json:"difficulty" validate:"required,is-difficulty"`
	RatingsAverage  float64        `gorm:"default:4.5" json:"ratings_average" validate:"omitempty,min=1,max=5"`
	RatingsQuantity int            `gorm:"default:0" json:"ratings_quantity"`
	Price           float64        `gorm:"not null" json:"price" validate:"required,gt=0"`
	PriceDiscount   float64        `json:"price_discount,omitempty" validate:"omitempty,gt=0,ltfield=Price"`
	Summary         string         `gorm:"not null" json:"summary" validate:"required"`
	Description     string         `gorm:"type:text" json:"description,omitempty"`
	ImageCover      string         `gorm:"not null" json:"image_cover" validate:"required"`
	Images          pq.StringArray `gorm:"type:text[]" json:"images,omitempty"`
	StartDates      pq.StringArray `gorm:"type:text[]" json:"start_dates,omitempty"`
	SecretTour      bool           `gorm:"default:false" json:"secret_tour"`

	// GeoJSON points
	StartLocation datatypes.JSON `gorm:"type:jsonb" json:"start_location,omitempty"`
	Locations     datatypes.JSON `gorm:"type:jsonb" json:"locations,omitempty"`

	Guides []User `gorm:"many2many:tour_guides" json:"guides,omitempty"`
}

// BeforeSave keeps the slug derived from the name.
func (t *Tour) BeforeSave(*gorm.DB) error {
	t.Slug = Slugify(t.Name)
	return nil
}

// Slugify lowercases and hyphenates a name for URL use.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // trims leading hyphens
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
