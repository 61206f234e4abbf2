package suggestion

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	journalRepo "stillpoint/database/repository/journal"
	"stillpoint/models"
	"stillpoint/services/quota"
	"stillpoint/services/selection"
	"stillpoint/services/usage"
)

// LimiterAPI is the limiter bucket guarding text generation.
const LimiterAPI = "gemini"

// DefaultSuggestionService is the production implementation.
type DefaultSuggestionService struct {
	AI      TextGenerator
	Cache   *quota.RequestCache
	Limiter *quota.Limiter
	Engine  *selection.Engine
	Journal journalRepo.JournalRepository
	Usage   usage.Tracker
	Logger  *zap.Logger

	now func() time.Time
}

func NewDefaultSuggestionService(ai TextGenerator, cache *quota.RequestCache, limiter *quota.Limiter, engine *selection.Engine, journal journalRepo.JournalRepository, tracker usage.Tracker, logger *zap.Logger) *DefaultSuggestionService {
	return &DefaultSuggestionService{
		AI:      ai,
		Cache:   cache,
		Limiter: limiter,
		Engine:  engine,
		Journal: journal,
		Usage:   tracker,
		Logger:  logger,
		now:     time.Now,
	}
}

// Daily returns today's suggestion. The category is derived from the date
// so every call within a day starts from the same activity theme.
func (s *DefaultSuggestionService) Daily(ctx context.Context, deviceID string, loc *models.LatLng) (*models.Suggestion, error) {
	category := dailyCategory(s.now())
	return s.produce(ctx, deviceID, category, false, loc)
}

// Skip generates a fresh suggestion with a random category, bypassing the
// suggestion cache so the user sees something new.
func (s *DefaultSuggestionService) Skip(ctx context.Context, deviceID string, loc *models.LatLng) (*models.Suggestion, error) {
	category := models.AllCategories[rand.Intn(len(models.AllCategories))]
	return s.produce(ctx, deviceID, category, true, loc)
}

func (s *DefaultSuggestionService) produce(ctx context.Context, deviceID, category string, bypassCache bool, loc *models.LatLng) (*models.Suggestion, error) {
	sug, err := s.generate(ctx, category, bypassCache)
	if err != nil {
		return nil, err
	}

	s.logToJournal(deviceID, sug, bypassCache)

	if loc != nil {
		sug = s.Engine.EnrichSuggestion(ctx, sug, loc.Latitude, loc.Longitude)
	}
	return sug, nil
}

// generate returns the suggestion text for a category, consulting the
// short-lived cache unless bypassed. A failed model call falls back to a
// curated suggestion; the app must always produce a break.
func (s *DefaultSuggestionService) generate(ctx context.Context, category string, bypassCache bool) (*models.Suggestion, error) {
	prompt := buildPrompt(category)
	key := s.Cache.Key("suggestion", category)

	if !bypassCache {
		if data, ok := s.Cache.Get(ctx, key); ok {
			var cached models.Suggestion
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	if err := s.Limiter.Wait(ctx, LimiterAPI); err != nil {
		return nil, err
	}

	text, tokens, err := s.AI.GenerateContent(ctx, prompt)
	if err != nil {
		s.Logger.Warn("suggestion generation failed, using fallback",
			zap.String("category", category), zap.Error(err))
		return s.fallback(category), nil
	}
	s.Usage.TrackGemini(tokens)

	sug, err := parseSuggestion(text, category)
	if err != nil {
		s.Logger.Warn("unparseable suggestion output, using fallback",
			zap.String("category", category), zap.Error(err))
		return s.fallback(category), nil
	}

	if !bypassCache {
		if data, err := json.Marshal(sug); err == nil {
			s.Cache.Set(ctx, key, data)
		}
	}
	return sug, nil
}

func (s *DefaultSuggestionService) fallback(category string) *models.Suggestion {
	sug := fallbackSuggestion(category)
	sug.ID = uuid.New().String()
	sug.GeneratedAt = s.now()
	return sug
}

func (s *DefaultSuggestionService) logToJournal(deviceID string, sug *models.Suggestion, fromSkip bool) {
	if s.Journal == nil || deviceID == "" {
		return
	}
	entry := &models.JournalEntry{
		ID:              uuid.New().String(),
		DeviceID:        deviceID,
		SuggestionID:    sug.ID,
		Title:           sug.Title,
		Category:        sug.Category,
		DurationMinutes: sug.DurationMinutes,
		Skipped:         fromSkip,
		CreatedAt:       s.now(),
	}
	if err := s.Journal.Add(entry); err != nil {
		s.Logger.Warn("failed to record journal entry", zap.Error(err))
	}
}

// dailyCategory picks a stable category for the calendar day.
func dailyCategory(t time.Time) string {
	seed := t.Year()*10000 + int(t.Month())*100 + t.Day()
	return models.AllCategories[seed%len(models.AllCategories)]
}

// parseSuggestion extracts the JSON object from the model output. Models
// wrap JSON in prose or code fences often enough that we slice from the
// first '{' to the last '}'.
func parseSuggestion(text, category string) (*models.Suggestion, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	var parsed struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		DurationMinutes int    `json:"durationMinutes"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode model output: %w", err)
	}
	if parsed.Title == "" || parsed.Description == "" {
		return nil, fmt.Errorf("model output missing title or description")
	}
	if parsed.DurationMinutes <= 0 {
		parsed.DurationMinutes = 5
	}

	return &models.Suggestion{
		ID:              uuid.New().String(),
		Title:           parsed.Title,
		Description:     parsed.Description,
		DurationMinutes: parsed.DurationMinutes,
		Category:        category,
		GeneratedAt:     time.Now(),
	}, nil
}
