package models

type Booking struct {
	BaseModel
	TourID string  `gorm:"type:uuid;not null;index" json:"tour_id" validate:"required"`
	UserID string  `gorm:"type:uuid;not null;index" json:"user_id" validate:"required"`
	Price  float64 `gorm:"not null" json:"price" validate:"required,gt=0"`
	Paid   bool    `gorm:"default:true" json:"paid"`

	Tour *Tour `gorm:"foreignKey:TourID" json:"tour,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
