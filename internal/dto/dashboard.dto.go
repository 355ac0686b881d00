package dto

type TopStore struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`
}

type AdminDashboard struct {
	TotalUsers    int64      `json:"total_users"`
	TotalStores   int64      `json:"total_stores"`
	TotalRatings  int64      `json:"total_ratings"`
	AverageRating float64    `json:"average_rating"`
	TopStores     []TopStore `json:"top_stores"`
}

type OwnerDashboard struct {
	// Store mirrors the single-store dashboard of the web client. Stores
	// carries every store the owner holds, since the data model does not
	// cap ownership at one.
	Store  StoreSummary   `json:"store"`
	Stores []StoreSummary `json:"stores"`
	Raters []StoreRater   `json:"users_with_ratings"`
}
