package models

type Review struct {
	BaseModel
	Review string `gorm:"type:text;not null" json:"review" validate:"required"`
	Rating int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating" validate:"required,min=1,max=5"`
	TourID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_review_tour_user" json:"tour_id" validate:"required"`
	UserID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_review_tour_user" json:"user_id"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tour *Tour `gorm:"foreignKey:TourID" json:"-"`
}
