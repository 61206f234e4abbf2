// File: utils/constants.go
package utils

// PlacesCachePrefix is the Redis key prefix for cached place searches.
const PlacesCachePrefix = "places:cache:"

// SuggestionCachePrefix is the Redis key prefix for cached suggestion text.
const SuggestionCachePrefix = "ai:cache:"

// HistoryKey is the Redis key holding recently shown place IDs.
const HistoryKey = "history:recent_location_ids"

// UsagePrefix is the Redis key prefix for daily API usage counters.
const UsagePrefix = "usage:"
