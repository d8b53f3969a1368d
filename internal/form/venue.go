package form

import (
	"strings"

	"github.com/iliyamo/fyyur/internal/model"
)

// VenueForm is the create and edit form of a venue.
type VenueForm struct {
	Name               string   `form:"name" json:"name" validate:"required,max=120"`
	City               string   `form:"city" json:"city" validate:"required,max=120"`
	State              string   `form:"state" json:"state" validate:"required,state"`
	Address            string   `form:"address" json:"address" validate:"required,max=120"`
	Phone              string   `form:"phone" json:"phone" validate:"required,phone"`
	ImageLink          string   `form:"image_link" json:"image_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" json:"facebook_link" validate:"omitempty,url,max=120"`
	Genres             []string `form:"genres" json:"genres" validate:"min=1,dive,genre"`
	Website            string   `form:"website" json:"website" validate:"omitempty,url,max=120"`
	SeekingTalent      string   `form:"seeking_talent" json:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" json:"seeking_description" validate:"max=500"`
}

// Normalize trims surrounding whitespace from every text field.
func (f *VenueForm) Normalize() {
	for _, p := range []*string{&f.Name, &f.City, &f.State, &f.Address, &f.Phone,
		&f.ImageLink, &f.FacebookLink, &f.Website, &f.SeekingDescription} {
		*p = strings.TrimSpace(*p)
	}
}

// Venue converts a validated form into a model.  id is zero on create.
func (f VenueForm) Venue(id uint64) model.Venue {
	return model.Venue{
		ID:                 id,
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Genres:             model.Genres(append([]string{}, f.Genres...)),
		Website:            f.Website,
		SeekingTalent:      Flag(f.SeekingTalent),
		SeekingDescription: f.SeekingDescription,
	}
}

// VenueFormFrom pre-populates the edit form from a stored venue.
func VenueFormFrom(v model.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		Genres:             append([]string{}, v.Genres...),
		Website:            v.Website,
		SeekingTalent:      flagValue(v.SeekingTalent),
		SeekingDescription: v.SeekingDescription,
	}
}
