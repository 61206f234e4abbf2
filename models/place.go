package models

// MaxPlacePhotos caps how many photos are kept per normalized place.
const MaxPlacePhotos = 3

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlacePhoto is a single photo attached to a place, already resolved to a
// fetchable proxy URL for whichever provider supplied it.
type PlacePhoto struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Place is a normalized point of interest. It is constructed once from a
// provider response (or a cache hit) and never mutated afterwards.
type Place struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Address      string       `json:"address,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Website      string       `json:"website,omitempty"`
	Rating       *float64     `json:"rating,omitempty"`
	Location     *LatLng      `json:"location,omitempty"`
	Types        []string     `json:"types,omitempty"`
	Photos       []PlacePhoto `json:"photos,omitempty"`
	OpeningHours []string     `json:"openingHours,omitempty"`
}

// PrimaryType returns the first type tag, used for diversity bucketing.
func (p *Place) PrimaryType() string {
	if len(p.Types) == 0 {
		return ""
	}
	return p.Types[0]
}

// HasAnyType reports whether any of the place's type tags appears in the
// given set.
func (p *Place) HasAnyType(tags []string) bool {
	for _, t := range p.Types {
		for _, tag := range tags {
			if t == tag {
				return true
			}
		}
	}
	return false
}

// LocationSuggestion wraps a Place with display context for one suggestion.
type LocationSuggestion struct {
	Place     Place  `json:"place"`
	Distance  string `json:"distance"`
	Relevance string `json:"relevance"`
}
