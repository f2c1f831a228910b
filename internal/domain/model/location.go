package model

import "time"

// Location is a store or warehouse holding stock.
type Location struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
