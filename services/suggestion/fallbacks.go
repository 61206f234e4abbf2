package suggestion

import (
	"math/rand"

	"stillpoint/models"
)

// curated holds offline suggestions per category, used whenever the model
// call fails or returns something unusable.
var curated = map[string][]models.Suggestion{
	"mindful": {
		{Title: "Three slow breaths", Description: "Close your eyes and take three slow, deep breaths. Notice the air moving in and out.", DurationMinutes: 2},
		{Title: "Body scan", Description: "Starting at your toes, slowly notice each part of your body without judging anything you find.", DurationMinutes: 5},
	},
	"sensory": {
		{Title: "Five things you hear", Description: "Sit still and pick out five distinct sounds around you, from the loudest to the faintest.", DurationMinutes: 3},
	},
	"movement": {
		{Title: "Shoulder rolls", Description: "Roll your shoulders slowly backwards ten times, then forwards ten times. Let your jaw unclench.", DurationMinutes: 2},
		{Title: "Walk to a window", Description: "Stand up, walk to the nearest window, and stretch your arms overhead while looking outside.", DurationMinutes: 3},
	},
	"reflection": {
		{Title: "One-line journal", Description: "Write a single sentence about how this moment feels. No editing allowed.", DurationMinutes: 3},
	},
	"discovery": {
		{Title: "Notice something new", Description: "Look around the room you know so well and find one thing you have never really noticed before.", DurationMinutes: 3},
	},
	"rest": {
		{Title: "Eyes closed minute", Description: "Set a timer for one minute, close your eyes, and let your face completely relax.", DurationMinutes: 2},
	},
	"creative": {
		{Title: "Sixty-second doodle", Description: "Grab any pen and doodle whatever appears. The goal is motion, not art.", DurationMinutes: 2},
	},
	"nature": {
		{Title: "Sky check", Description: "Find the sky, through a window or outside, and watch it do whatever it is doing for a few minutes.", DurationMinutes: 4},
	},
	"social": {
		{Title: "Small hello", Description: "Say a genuine hello to the next person you see, with eye contact and a smile.", DurationMinutes: 2},
	},
	"connection": {
		{Title: "Send a kind text", Description: "Message someone you care about just to say you were thinking of them. Nothing more needed.", DurationMinutes: 3},
	},
	"learning": {
		{Title: "One curious question", Description: "Think of something you have always wondered about and spend a few minutes finding the answer.", DurationMinutes: 5},
	},
	"play": {
		{Title: "Hum a tune", Description: "Hum the first song that comes to mind, badly if necessary. Bonus points for a little dance.", DurationMinutes: 2},
	},
	"service": {
		{Title: "Tiny favor", Description: "Do one small unrequested thing for someone nearby, like refilling the kettle or holding a door.", DurationMinutes: 3},
	},
	"gratitude": {
		{Title: "Three good things", Description: "Name three things, however small, that went right today. Savor each for a breath.", DurationMinutes: 3},
	},
}

var genericFallback = models.Suggestion{
	Title:           "Pause and breathe",
	Description:     "Stop what you are doing, soften your shoulders, and take five unhurried breaths.",
	DurationMinutes: 3,
}

// fallbackSuggestion returns a copy of a curated suggestion for the
// category. ID and timestamp are left for the caller to fill.
func fallbackSuggestion(category string) *models.Suggestion {
	options, ok := curated[category]
	if !ok || len(options) == 0 {
		sug := genericFallback
		sug.Category = category
		return &sug
	}
	sug := options[rand.Intn(len(options))]
	sug.Category = category
	return &sug
}
