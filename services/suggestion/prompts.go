package suggestion

import "fmt"

// categoryHints steer the model toward the spirit of each category.
var categoryHints = map[string]string{
	"mindful":    "a short mindfulness or breathing exercise",
	"sensory":    "an activity engaging one of the five senses",
	"movement":   "gentle physical movement or stretching",
	"reflection": "a brief journaling or reflection exercise",
	"discovery":  "noticing or exploring something new nearby",
	"rest":       "genuine rest for eyes, mind or body",
	"creative":   "a tiny creative act like doodling or humming",
	"nature":     "connecting with nature, even through a window",
	"social":     "a small positive interaction with another person",
	"connection": "reaching out to someone who matters",
	"learning":   "learning one small interesting thing",
	"play":       "something light and playful",
	"service":    "a small act of kindness or help",
	"gratitude":  "noticing something to be grateful for",
}

func buildPrompt(category string) string {
	hint, ok := categoryHints[category]
	if !ok {
		hint = "a gentle restorative activity"
	}
	return fmt.Sprintf(`You are a wellness coach. Suggest one short micro-break activity: %s.
The activity must take between 2 and 10 minutes, require no equipment, and be doable by anyone.
Respond with only a JSON object in exactly this shape:
{"title": "...", "description": "...", "durationMinutes": 5}
The title is at most 6 words. The description is 1-2 warm, encouraging sentences.`, hint)
}
