package places

// typeAliases translates generic type tags into the Places API (New)
// vocabulary. Unmapped tags pass through unchanged; the legacy fallback
// endpoint always receives the original tags.
var typeAliases = map[string]string{
	"landmark":  "historical_landmark",
	"garden":    "botanical_garden",
	"gallery":   "art_gallery",
	"gym":       "fitness_center",
	"temple":    "place_of_worship",
	"church":    "place_of_worship",
	"viewpoint": "tourist_attraction",
	"trail":     "hiking_area",
}

// mapTypes translates tags through typeAliases and collapses duplicates,
// preserving first-seen order.
func mapTypes(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	mapped := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := tag
		if alias, ok := typeAliases[tag]; ok {
			t = alias
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		mapped = append(mapped, t)
	}
	return mapped
}
