package models

import "time"

// One row per (user, store) pair, enforced by the composite unique index.
type Rating struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex:idx_ratings_user_store;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StoreID uint  `gorm:"uniqueIndex:idx_ratings_user_store;not null" json:"store_id"`
	Store   Store `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Rating int `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
