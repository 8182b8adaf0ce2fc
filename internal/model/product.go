package model

import "time"

// Product is a catalog entry served by the authenticated listing
// endpoint.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedOn time.Time `json:"created_on"`
}
