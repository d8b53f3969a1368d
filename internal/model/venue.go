package model

import "strings"

// Venue represents a location that hosts shows.  It corresponds to a row
// in the `venues` table.  Optional text columns are stored as NULL when
// empty and surface here as empty strings.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – display name of the venue.
//  City, State        – location; together they form the listing area.
//  Address            – street address.
//  Phone              – contact phone number.
//  ImageLink          – optional picture URL.
//  FacebookLink       – optional Facebook page URL.
//  Genres             – ordered list of genres played at the venue.
//  Website            – optional website URL.
//  SeekingTalent      – whether the venue is looking for artists.
//  SeekingDescription – optional free text shown when seeking talent.
type Venue struct {
	ID                 uint64 `json:"id"`
	Name               string `json:"name"`
	City               string `json:"city"`
	State              string `json:"state"`
	Address            string `json:"address"`
	Phone              string `json:"phone"`
	ImageLink          string `json:"image_link,omitempty"`
	FacebookLink       string `json:"facebook_link,omitempty"`
	Genres             Genres `json:"genres"`
	Website            string `json:"website,omitempty"`
	SeekingTalent      bool   `json:"seeking_talent"`
	SeekingDescription string `json:"seeking_description,omitempty"`
}

// Area is a distinct (city, state) pair used to group the venue listing.
type Area struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// Area returns the listing area the venue belongs to.
func (v Venue) Area() Area {
	return Area{City: v.City, State: v.State}
}

// Key folds case and surrounding space the way the table's
// case-insensitive collation compares city and state.
func (a Area) Key() Area {
	return Area{
		City:  strings.ToLower(strings.TrimSpace(a.City)),
		State: strings.ToUpper(strings.TrimSpace(a.State)),
	}
}
