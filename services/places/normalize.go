package places

import (
	"fmt"

	"stillpoint/models"
)

const photoMaxWidthPx = 800

// normalizeModern converts a Places API (New) response into the common
// place shape, deduplicating by ID and capping photos.
func normalizeModern(resp *searchNearbyResponse, apiKey string) []models.Place {
	out := make([]models.Place, 0, len(resp.Places))
	seen := make(map[string]struct{}, len(resp.Places))
	for _, gp := range resp.Places {
		if gp.ID == "" {
			continue
		}
		if _, dup := seen[gp.ID]; dup {
			continue
		}
		seen[gp.ID] = struct{}{}

		p := models.Place{
			ID:      gp.ID,
			Address: gp.FormattedAddress,
			Phone:   gp.InternationalPhoneNumber,
			Website: gp.WebsiteURI,
			Rating:  gp.Rating,
			Types:   gp.Types,
		}
		if gp.DisplayName != nil {
			p.Name = gp.DisplayName.Text
		}
		if gp.Location != nil {
			p.Location = &models.LatLng{Latitude: gp.Location.Latitude, Longitude: gp.Location.Longitude}
		}
		if gp.RegularOpeningHours != nil {
			p.OpeningHours = gp.RegularOpeningHours.WeekdayDescriptions
		}
		for i, ph := range gp.Photos {
			if i >= models.MaxPlacePhotos {
				break
			}
			p.Photos = append(p.Photos, models.PlacePhoto{
				URL: fmt.Sprintf("https://places.googleapis.com/v1/%s/media?maxWidthPx=%d&key=%s",
					ph.Name, photoMaxWidthPx, apiKey),
				Width:  ph.WidthPx,
				Height: ph.HeightPx,
			})
		}
		out = append(out, p)
	}
	return out
}

// normalizeLegacy converts a legacy nearby-search response into the common
// place shape.
func normalizeLegacy(resp *legacySearchResponse, apiKey string) []models.Place {
	out := make([]models.Place, 0, len(resp.Results))
	seen := make(map[string]struct{}, len(resp.Results))
	for _, lr := range resp.Results {
		if lr.PlaceID == "" {
			continue
		}
		if _, dup := seen[lr.PlaceID]; dup {
			continue
		}
		seen[lr.PlaceID] = struct{}{}

		p := models.Place{
			ID:      lr.PlaceID,
			Name:    lr.Name,
			Address: lr.Vicinity,
			Rating:  lr.Rating,
			Types:   lr.Types,
		}
		if lr.Geometry != nil {
			p.Location = &models.LatLng{Latitude: lr.Geometry.Location.Lat, Longitude: lr.Geometry.Location.Lng}
		}
		for i, ph := range lr.Photos {
			if i >= models.MaxPlacePhotos {
				break
			}
			p.Photos = append(p.Photos, models.PlacePhoto{
				URL: fmt.Sprintf("https://maps.googleapis.com/maps/api/place/photo?photoreference=%s&maxwidth=%d&key=%s",
					ph.PhotoReference, photoMaxWidthPx, apiKey),
				Width:  ph.Width,
				Height: ph.Height,
			})
		}
		out = append(out, p)
	}
	return out
}
