package quiz

// Score range covered by the category bands.
const (
	MinScore = 10
	MaxScore = 40
)

// Category is the result band a total score falls into.
type Category struct {
	Key           string
	Title         string
	Description   string
	Emoji         string
	ShareImageURL string
	Min           int
	Max           int
}

const shareImageBase = "https://signal-creator-quiz-v1-pdml.vercel.app/"

// bands are ordered lowest first. Bands are contiguous and inclusive.
var bands = []Category{
	{
		Key:           "heavy-noise",
		Title:         "Heavy Noise Creator",
		Description:   "You're chasing dopamine, but risk burnout.",
		Emoji:         "📢",
		ShareImageURL: shareImageBase + "share-heavy-noise.png",
		Min:           10,
		Max:           17,
	},
	{
		Key:           "leaning-noise",
		Title:         "Leaning Noise Creator",
		Description:   "You mix some value, but still fall for algo traps.",
		Emoji:         "⚠️",
		ShareImageURL: shareImageBase + "share-leaning-noise.png",
		Min:           18,
		Max:           25,
	},
	{
		Key:           "leaning-signal",
		Title:         "Leaning Signal Creator",
		Description:   "You're on the path to reputation and algo-resistance.",
		Emoji:         "✨",
		ShareImageURL: shareImageBase + "share-leaning-signal.png",
		Min:           26,
		Max:           33,
	},
	{
		Key:           "strong-signal",
		Title:         "Strong Signal Creator",
		Description:   "You give value freely, build trust, and play the long game.",
		Emoji:         "🎯",
		ShareImageURL: shareImageBase + "share-strong-signal.png",
		Min:           34,
		Max:           40,
	},
}

// Categories returns all result categories, lowest band first.
func Categories() []Category {
	out := make([]Category, len(bands))
	copy(out, bands)
	return out
}

// ComputeScore sums the selected answer values. No range checks are done;
// callers supply one value per answered question.
func ComputeScore(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// Classify maps a total score to its category. Scores below the lowest
// band land in the lowest category and anything above the third band
// falls through to the highest, so Classify never fails.
func Classify(score int) Category {
	if score < bands[0].Min {
		return bands[0]
	}
	for _, b := range bands[:len(bands)-1] {
		if score >= b.Min && score <= b.Max {
			return b
		}
	}
	return bands[len(bands)-1]
}
