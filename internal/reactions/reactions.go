package reactions

import (
	"github.com/tastebook/backend/internal/apperr"
	"github.com/tastebook/backend/internal/models"
)

// Emojis is the fixed set of accepted reaction symbols.
var Emojis = []string{"👍", "❤️", "😂", "😮", "😢", "🔥"}

// Valid reports whether emoji belongs to the fixed set.
func Valid(emoji string) bool {
	for _, e := range Emojis {
		if e == emoji {
			return true
		}
	}
	return false
}

// Apply computes the updated reaction list for a subject after userID selects
// emoji. A user has at most one entry: selecting a new emoji appends, the same
// emoji removes it, a different emoji replaces it in place. The input slice is
// not modified.
func Apply(list []models.Reaction, userID uint, emoji string) ([]models.Reaction, error) {
	if !Valid(emoji) {
		return nil, apperr.New(apperr.Validation, "unsupported reaction emoji")
	}

	out := make([]models.Reaction, 0, len(list)+1)
	found := false
	for _, r := range list {
		if r.UserID != userID {
			out = append(out, r)
			continue
		}
		found = true
		if r.Emoji == emoji {
			continue // same emoji toggles the reaction off
		}
		out = append(out, models.Reaction{UserID: userID, Emoji: emoji})
	}
	if !found {
		out = append(out, models.Reaction{UserID: userID, Emoji: emoji})
	}
	return out, nil
}

// Counts tallies reactions per emoji for response payloads.
func Counts(list []models.Reaction) map[string]int {
	counts := make(map[string]int)
	for _, r := range list {
		counts[r.Emoji]++
	}
	return counts
}
