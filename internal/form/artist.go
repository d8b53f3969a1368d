package form

import (
	"strings"

	"github.com/iliyamo/fyyur/internal/model"
)

// ArtistForm is the create and edit form of an artist.
type ArtistForm struct {
	Name               string   `form:"name" json:"name" validate:"required,max=120"`
	City               string   `form:"city" json:"city" validate:"required,max=120"`
	State              string   `form:"state" json:"state" validate:"required,state"`
	Phone              string   `form:"phone" json:"phone" validate:"required,phone"`
	ImageLink          string   `form:"image_link" json:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link" validate:"omitempty,url,max=120"`
	Genres             []string `form:"genres" json:"genres" validate:"min=1,dive,genre"`
	Website            string   `form:"website" json:"website" validate:"omitempty,url,max=120"`
	SeekingVenue       string   `form:"seeking_venue" json:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description" validate:"max=500"`
}

// Normalize trims surrounding whitespace from every text field.
func (f *ArtistForm) Normalize() {
	for _, p := range []*string{&f.Name, &f.City, &f.State, &f.Phone,
		&f.ImageLink, &f.FacebookLink, &f.Website, &f.SeekingDescription} {
		*p = strings.TrimSpace(*p)
	}
}

// Artist converts a validated form into a model.
func (f ArtistForm) Artist(id uint64) model.Artist {
	return model.Artist{
		ID:                 id,
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Genres:             model.Genres(append([]string{}, f.Genres...)),
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.Website,
		SeekingVenue:       Flag(f.SeekingVenue),
		SeekingDescription: f.SeekingDescription,
	}
}

// ArtistFormFrom pre-populates the edit form from a stored artist.
func ArtistFormFrom(a model.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		Genres:             append([]string{}, a.Genres...),
		Website:            a.Website,
		SeekingVenue:       flagValue(a.SeekingVenue),
		SeekingDescription: a.SeekingDescription,
	}
}
