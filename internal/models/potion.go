package models

import "time"

// Potion represents a potion record in the catalog.
type Potion struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Vendor    string    `json:"vendor"`
	Category  string    `json:"category"`
	Strength  float64   `json:"strength"`
	Flavor    float64   `json:"flavor"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}

// PotionUpdate carries a partial update. Nil fields are left untouched,
// so a PUT body may contain any subset of the potion fields.
type PotionUpdate struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Vendor   *string  `json:"vendor"`
	Category *string  `json:"category"`
	Strength *float64 `json:"strength"`
	Flavor   *float64 `json:"flavor"`
	Score    *float64 `json:"score"`
}

// VendorScore is one row of the average-score-by-vendor aggregation.
// The GroupID json key mirrors the grouping key name used by the
// analytics endpoints.
type VendorScore struct {
	Vendor       string  `json:"_id"`
	AverageScore float64 `json:"averageScore"`
}

// CategoryScore is one row of the average-score-by-category aggregation.
type CategoryScore struct {
	Category     string  `json:"_id"`
	AverageScore float64 `json:"averageScore"`
}

// PotionRatio is one row of the strength/flavor projection. The ratio is
// null when flavor is zero, matching the store's division semantics.
type PotionRatio struct {
	ID                  string   `json:"_id"`
	StrengthFlavorRatio *float64 `json:"strengthFlavorRatio"`
}
