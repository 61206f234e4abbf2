package models

// UsageSnapshot summarizes one day's paid API consumption.
type UsageSnapshot struct {
	Date         string `json:"date"`
	PlacesCalls  int64  `json:"placesCalls"`
	PlacesCached int64  `json:"placesCached"`
	GeminiCalls  int64  `json:"geminiCalls"`
	GeminiTokens int64  `json:"geminiTokens"`
}
