// Package sign defines the fortune-sign data model and the embedded sign
// library lingqian draws from.
//
// A sign (签) is one entry of a fortune-slip set: a short oracle verse, its
// interpretation, a summary verdict, and per-aspect readings (career, wealth,
// love, ...). Sign sets are keyed by language; the Chinese set is canonical
// and every other language falls back to it when its own set is missing.
package sign

import (
	"strings"
)

// LuckGlyph is the glyph whose count in a LuckIndex encodes the star rating.
const LuckGlyph = '★'

// MaxRating is the highest rating the data set can carry. Ratings of 6 do
// occur in imported sign sets even though the displayed scale is 1–5; see
// Theme for how they are handled.
const MaxRating = 6

// Categories is the fixed set of per-aspect fortune keys, in display order.
var Categories = []string{"career", "wealth", "love", "health", "study", "travel"}

// Mantra holds the optional chant metadata attached to a sign. It is
// consumed by the audio playback UI, not by the card composer.
type Mantra struct {
	Title string `json:"title,omitempty" bson:"title,omitempty"`
	Audio string `json:"audio,omitempty" bson:"audio,omitempty"`
}

// Record is one fortune sign. All text fields are optional; consumers must
// treat a missing field as an empty string, never as an error. Free-text
// fields may contain embedded newlines, each starting a new paragraph.
type Record struct {
	ID                  string            `json:"id" bson:"id"`
	LuckIndex           string            `json:"luck_index" bson:"luck_index"`
	ProphecyText        string            `json:"prophecy_text" bson:"prophecy_text"`
	FortuneText         string            `json:"fortune_text" bson:"fortune_text"`
	SummaryText         string            `json:"summary_text" bson:"summary_text"`
	CategorizedFortunes map[string]string `json:"categorized_fortunes,omitempty" bson:"categorized_fortunes,omitempty"`
	Advice              string            `json:"advice,omitempty" bson:"advice,omitempty"`
	Mantra              *Mantra           `json:"mantra,omitempty" bson:"mantra,omitempty"`
}

// Rating returns the star rating encoded in LuckIndex: the number of
// LuckGlyph runes it contains. An index without the glyph rates zero.
func (r Record) Rating() int {
	return strings.Count(r.LuckIndex, string(LuckGlyph))
}

// Category returns the categorized fortune for key, or "" if absent.
func (r Record) Category(key string) string {
	return r.CategorizedFortunes[key]
}

// Theme names for each rating tier, used by callers to pick presentation
// (CSS theme class, terminal color). Index 0 is the out-of-range fallback.
var themes = [...]string{"unknown", "bad", "minor", "fair", "good", "great"}

// Theme maps a star rating to its theme key. A rating of 6 is treated the
// same as 5: imported sign sets contain 6-star entries but the theme scale
// has always been five-tiered, and the historical behavior is kept as-is.
func Theme(rating int) string {
	if rating >= 6 {
		rating = 5
	}
	if rating < 1 {
		return themes[0]
	}
	return themes[rating]
}
