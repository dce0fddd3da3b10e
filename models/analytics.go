package models

import "time"

// AdStats is the aggregated click/view counter row for a single ad slot.
type AdStats struct {
	AdID      string    `json:"ad_id"`
	Clicks    int       `json:"clicks"`
	Views     int       `json:"views"`
	UpdatedAt time.Time `json:"updated_at"`
}
