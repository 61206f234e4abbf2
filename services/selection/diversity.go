package selection

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"stillpoint/models"
)

// Selection bounds. Candidates are accepted freely up to the floor; beyond
// it both diversity rules must hold, up to the cap.
const (
	SelectionFloor       = 15
	SelectionCap         = 25
	MaxSharedPrimaryType = 4
	MinSeparationMeters  = 200.0
)

// metersBetween is the great-circle distance between two coordinates.
func metersBetween(a, b models.LatLng) float64 {
	return geo.Distance(
		orb.Point{a.Longitude, a.Latitude},
		orb.Point{b.Longitude, b.Latitude},
	)
}

// selectDiverse walks the ranked list and greedily accepts candidates. A
// candidate passes if the floor has not been reached yet, or if it both
// keeps its primary-type bucket under MaxSharedPrimaryType and sits at
// least MinSeparationMeters from every already-accepted place.
func selectDiverse(ranked []scoredPlace) []models.Place {
	var accepted []models.Place
	typeCounts := make(map[string]int)

	for _, cand := range ranked {
		if len(accepted) >= SelectionCap {
			break
		}
		if len(accepted) >= SelectionFloor && !passesDiversity(&cand.Place, accepted, typeCounts) {
			continue
		}
		accepted = append(accepted, cand.Place)
		typeCounts[cand.Place.PrimaryType()]++
	}
	return accepted
}

func passesDiversity(cand *models.Place, accepted []models.Place, typeCounts map[string]int) bool {
	if typeCounts[cand.PrimaryType()] >= MaxSharedPrimaryType {
		return false
	}
	if cand.Location == nil {
		return true
	}
	for i := range accepted {
		if accepted[i].Location == nil {
			continue
		}
		if metersBetween(*cand.Location, *accepted[i].Location) < MinSeparationMeters {
			return false
		}
	}
	return true
}
