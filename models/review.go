package models

import "time"

// Review is one customer testimonial shown on the home page.
type Review struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Review    string    `json:"review"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

const MaxReviewLength = 500
