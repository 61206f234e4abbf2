package selection

import "stillpoint/models"

// TypeTiers holds the place-type priority tiers for one suggestion category.
type TypeTiers struct {
	Primary   []string
	Secondary []string
	Fallback  []string
}

// defaultTiers covers categories missing from the table.
var defaultTiers = TypeTiers{
	Primary:   []string{"park", "cafe"},
	Secondary: []string{"museum", "library"},
	Fallback:  []string{"restaurant"},
}

// varietyTypes are always added to the search so results are not limited to
// the category's own vocabulary.
var varietyTypes = []string{"tourist_attraction", "landmark"}

// interestingTypes earn the flat interest bonus during scoring.
var interestingTypes = []string{"tourist_attraction", "museum", "art_gallery", "landmark"}

// categoryTiers maps each suggestion category to its place-type priorities.
var categoryTiers = map[string]TypeTiers{
	models.CategoryMindful: {
		Primary:   []string{"park", "garden", "temple"},
		Secondary: []string{"museum", "library"},
		Fallback:  []string{"cafe"},
	},
	models.CategorySensory: {
		Primary:   []string{"garden", "park", "bakery"},
		Secondary: []string{"cafe", "florist"},
		Fallback:  []string{"restaurant"},
	},
	models.CategoryMovement: {
		Primary:   []string{"park", "gym", "trail"},
		Secondary: []string{"stadium", "tourist_attraction"},
		Fallback:  []string{"shopping_mall"},
	},
	models.CategoryReflection: {
		Primary:   []string{"park", "garden", "library"},
		Secondary: []string{"temple", "museum"},
		Fallback:  []string{"cafe"},
	},
	models.CategoryDiscovery: {
		Primary:   []string{"tourist_attraction", "museum", "landmark"},
		Secondary: []string{"gallery", "book_store"},
		Fallback:  []string{"cafe"},
	},
	models.CategoryRest: {
		Primary:   []string{"park", "garden", "cafe"},
		Secondary: []string{"library", "spa"},
		Fallback:  []string{"restaurant"},
	},
	models.CategoryCreative: {
		Primary:   []string{"gallery", "museum", "book_store"},
		Secondary: []string{"cafe", "library"},
		Fallback:  []string{"park"},
	},
	models.CategoryNature: {
		Primary:   []string{"park", "garden", "trail"},
		Secondary: []string{"viewpoint", "zoo"},
		Fallback:  []string{"cafe"},
	},
	models.CategorySocial: {
		Primary:   []string{"cafe", "restaurant", "bar"},
		Secondary: []string{"park", "shopping_mall"},
		Fallback:  []string{"bakery"},
	},
	models.CategoryConnection: {
		Primary:   []string{"cafe", "park"},
		Secondary: []string{"restaurant", "community_center"},
		Fallback:  []string{"shopping_mall"},
	},
	models.CategoryLearning: {
		Primary:   []string{"library", "museum", "book_store"},
		Secondary: []string{"gallery", "university"},
		Fallback:  []string{"cafe"},
	},
	models.CategoryPlay: {
		Primary:   []string{"park", "amusement_park", "bowling_alley"},
		Secondary: []string{"zoo", "aquarium"},
		Fallback:  []string{"shopping_mall"},
	},
	models.CategoryService: {
		Primary:   []string{"community_center", "church", "temple"},
		Secondary: []string{"park", "library"},
		Fallback:  []string{"cafe"},
	},
	models.CategoryGratitude: {
		Primary:   []string{"park", "garden", "viewpoint"},
		Secondary: []string{"temple", "church"},
		Fallback:  []string{"cafe"},
	},
}

// tiersFor returns the tier table for a category, or the generic default
// when the category is unknown.
func tiersFor(category string) TypeTiers {
	if tiers, ok := categoryTiers[category]; ok {
		return tiers
	}
	return defaultTiers
}

// searchTypes unions all three tiers with the variety tags, preserving
// order and dropping duplicates.
func searchTypes(tiers TypeTiers) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(tags []string) {
		for _, t := range tags {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	add(tiers.Primary)
	add(tiers.Secondary)
	add(tiers.Fallback)
	add(varietyTypes)
	return out
}
