package reactions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tastebook/backend/internal/apperr"
	"github.com/tastebook/backend/internal/models"
)

func TestApplyAddsReaction(t *testing.T) {
	out, err := Apply(nil, 1, "👍")
	require.NoError(t, err)
	assert.Equal(t, []models.Reaction{{UserID: 1, Emoji: "👍"}}, out)
}

func TestApplySameEmojiRemoves(t *testing.T) {
	list := []models.Reaction{{UserID: 1, Emoji: "👍"}, {UserID: 2, Emoji: "❤️"}}

	out, err := Apply(list, 1, "👍")
	require.NoError(t, err)
	assert.Equal(t, []models.Reaction{{UserID: 2, Emoji: "❤️"}}, out)
}

func TestApplyDifferentEmojiReplaces(t *testing.T) {
	list := []models.Reaction{{UserID: 1, Emoji: "👍"}, {UserID: 2, Emoji: "❤️"}}

	out, err := Apply(list, 1, "🔥")
	require.NoError(t, err)
	assert.Equal(t, []models.Reaction{{UserID: 1, Emoji: "🔥"}, {UserID: 2, Emoji: "❤️"}}, out)
}

func TestApplyRejectsUnknownEmoji(t *testing.T) {
	_, err := Apply(nil, 1, "🎉")
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestApplyNeverGrowsPastOnePerUser(t *testing.T) {
	var list []models.Reaction
	var err error
	for _, emoji := range []string{"👍", "❤️", "😂", "😮", "😢", "🔥"} {
		list, err = Apply(list, 7, emoji)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	list := []models.Reaction{{UserID: 1, Emoji: "👍"}}

	_, err := Apply(list, 1, "🔥")
	require.NoError(t, err)
	assert.Equal(t, "👍", list[0].Emoji)
}

func TestCounts(t *testing.T) {
	list := []models.Reaction{
		{UserID: 1, Emoji: "👍"},
		{UserID: 2, Emoji: "👍"},
		{UserID: 3, Emoji: "❤️"},
	}
	assert.Equal(t, map[string]int{"👍": 2, "❤️": 1}, Counts(list))
}
