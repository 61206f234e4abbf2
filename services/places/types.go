package places

// Wire shapes for the two Google Places providers. These mirror the external
// payload contracts and must not be reshaped.

// --- Places API (New): POST https://places.googleapis.com/v1/places:searchNearby ---

type searchNearbyRequest struct {
	IncludedTypes       []string            `json:"includedTypes,omitempty"`
	MaxResultCount      int                 `json:"maxResultCount,omitempty"`
	RankPreference      string              `json:"rankPreference,omitempty"`
	LocationRestriction locationRestriction `json:"locationRestriction"`
}

type locationRestriction struct {
	Circle circle `json:"circle"`
}

type circle struct {
	Center latLng  `json:"center"`
	Radius float64 `json:"radius"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type searchNearbyResponse struct {
	Places []gplace `json:"places"`
}

type gplace struct {
	ID                       string         `json:"id"`
	DisplayName              *localizedText `json:"displayName,omitempty"`
	FormattedAddress         string         `json:"formattedAddress,omitempty"`
	InternationalPhoneNumber string         `json:"internationalPhoneNumber,omitempty"`
	WebsiteURI               string         `json:"websiteUri,omitempty"`
	Rating                   *float64       `json:"rating,omitempty"`
	Location                 *latLng        `json:"location,omitempty"`
	Types                    []string       `json:"types,omitempty"`
	Photos                   []gphoto       `json:"photos,omitempty"`
	RegularOpeningHours      *openingHours  `json:"regularOpeningHours,omitempty"`
}

type localizedText struct {
	Text string `json:"text"`
}

type gphoto struct {
	Name     string `json:"name"`
	WidthPx  int    `json:"widthPx"`
	HeightPx int    `json:"heightPx"`
}

type openingHours struct {
	WeekdayDescriptions []string `json:"weekdayDescriptions,omitempty"`
}

// --- Legacy: GET https://maps.googleapis.com/maps/api/place/nearbysearch/json ---

type legacySearchResponse struct {
	Results []legacyResult `json:"results"`
	Status  string         `json:"status"`
}

type legacyResult struct {
	PlaceID  string        `json:"place_id"`
	Name     string        `json:"name"`
	Vicinity string        `json:"vicinity,omitempty"`
	Rating   *float64      `json:"rating,omitempty"`
	Geometry *legacyGeom   `json:"geometry,omitempty"`
	Types    []string      `json:"types,omitempty"`
	Photos   []legacyPhoto `json:"photos,omitempty"`
}

type legacyGeom struct {
	Location legacyLatLng `json:"location"`
}

type legacyLatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type legacyPhoto struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}
