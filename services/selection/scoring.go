package selection

import (
	"sort"

	"stillpoint/models"
)

// Scoring constants. Every candidate scores out of 100.
const (
	PrimaryRelevancePts   = 40.0
	SecondaryRelevancePts = 25.0
	FallbackRelevancePts  = 15.0
	MaxQualityPts         = 30.0
	NoveltyPts            = 20.0
	InterestBonusPts      = 10.0
)

// scoredPlace pairs a candidate with its composite score.
type scoredPlace struct {
	Place models.Place
	Score float64
}

// scorePlace computes the composite score for one candidate.
func scorePlace(p *models.Place, tiers TypeTiers, inHistory bool) float64 {
	var score float64

	// Task relevance: the highest tier any of the place's types hits.
	switch {
	case p.HasAnyType(tiers.Primary):
		score += PrimaryRelevancePts
	case p.HasAnyType(tiers.Secondary):
		score += SecondaryRelevancePts
	case p.HasAnyType(tiers.Fallback):
		score += FallbackRelevancePts
	}

	// Quality: proportional to rating when one exists.
	if p.Rating != nil {
		score += (*p.Rating / 5.0) * MaxQualityPts
	}

	// Novelty: credit for not having been shown recently. A soft penalty,
	// never an exclusion.
	if !inHistory {
		score += NoveltyPts
	}

	// Interest: inherently interesting venue types.
	if p.HasAnyType(interestingTypes) {
		score += InterestBonusPts
	}

	return score
}

// rankCandidates scores every candidate and sorts descending. The sort is
// stable so ties keep provider return order.
func rankCandidates(candidates []models.Place, tiers TypeTiers, inHistory func(id string) bool) []scoredPlace {
	scored := make([]scoredPlace, 0, len(candidates))
	for _, p := range candidates {
		scored = append(scored, scoredPlace{
			Place: p,
			Score: scorePlace(&p, tiers, inHistory(p.ID)),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
