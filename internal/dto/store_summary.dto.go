package dto

import "time"

// StoreSummary is a store annotated with its rating aggregate. AverageRating
// uses 0 as the no-ratings sentinel; UserRating is nil when the viewer has
// not rated the store, which is the one legitimate null in the payload.
type StoreSummary struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	OwnerID       uint    `json:"owner_id"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`
	UserRating    *int    `json:"user_rating"`
}

type StoreRater struct {
	UserID     uint      `json:"user_id" gorm:"column:user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Rating     int       `json:"rating"`
	RatingDate time.Time `json:"rating_date" gorm:"column:rating_date"`
}
