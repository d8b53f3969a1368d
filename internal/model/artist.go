package model

// Artist represents a performer who can be booked for shows.  It
// corresponds to a row in the `artists` table.
type Artist struct {
	ID                 uint64 `json:"id"`
	Name               string `json:"name"`
	City               string `json:"city"`
	State              string `json:"state"`
	Phone              string `json:"phone"`
	Genres             Genres `json:"genres"`
	ImageLink          string `json:"image_link,omitempty"`
	FacebookLink       string `json:"facebook_link,omitempty"`
	Website            string `json:"website,omitempty"`
	SeekingVenue       bool   `json:"seeking_venue"`
	SeekingDescription string `json:"seeking_description,omitempty"`
}
