package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kperez42/Celestia-sub000/internal/models"
)

func TestScore(t *testing.T) {
	svc := NewScreeningService(nil)

	tests := []struct {
		name       string
		text       string
		score      float64
		indicators []string
	}{
		{
			name:  "clean bio",
			text:  "I love hiking, cooking, and bad puns. Looking for someone to share sunsets with.",
			score: 0,
		},
		{
			name:       "flagged term",
			text:       "Check out my onlyfans for more",
			score:      0.4,
			indicators: []string{"flagged_term"},
		},
		{
			name:       "url",
			text:       "More about me at https://linktr.ee/someone",
			score:      0.3,
			indicators: []string{"url_in_bio"},
		},
		{
			name:       "email address",
			text:       "Reach me at someone@example.com instead",
			score:      0.3,
			indicators: []string{"contact_info_in_bio"},
		},
		{
			name:       "phone number",
			text:       "text me 555-123-4567",
			score:      0.3,
			indicators: []string{"contact_info_in_bio"},
		},
		{
			name:       "spam pattern",
			text:       "heyyyyyyy whats up",
			score:      0.2,
			indicators: []string{"spam_pattern"},
		},
		{
			name:       "everything at once caps at one",
			text:       "selling nudes!!!!!!! dm my telegram or www.example.com or someone@example.com",
			score:      1,
			indicators: []string{"flagged_term", "url_in_bio", "contact_info_in_bio", "spam_pattern"},
		},
		{
			name:  "empty text",
			text:  "",
			score: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, indicators := svc.Score(tt.text)
			assert.InDelta(t, tt.score, score, 0.001)
			assert.Equal(t, tt.indicators, indicators)
		})
	}
}

func TestScoreRepeatedRuns(t *testing.T) {
	svc := NewScreeningService(nil)

	// Five identical characters in a row is still fine.
	score, indicators := svc.Score("hiiiii there")
	assert.Zero(t, score)
	assert.Empty(t, indicators)

	// Six crosses into spam territory.
	score, indicators = svc.Score("hiiiiii there")
	assert.InDelta(t, 0.2, score, 0.001)
	assert.Equal(t, []string{"spam_pattern"}, indicators)

	// Runs are counted in runes, not bytes.
	score, indicators = svc.Score("so excited 🔥🔥🔥🔥🔥🔥")
	assert.InDelta(t, 0.2, score, 0.001)
	assert.Equal(t, []string{"spam_pattern"}, indicators)
}

func TestScoreWordBoundaries(t *testing.T) {
	svc := NewScreeningService(nil)

	// "promo" inside a longer word must not fire.
	score, _ := svc.Score("I got promoted to team lead last year")
	assert.Zero(t, score)
}

func TestScreenProfileEnqueuesAboveThreshold(t *testing.T) {
	db := openTestDB(t)
	queue := NewQueueService(db)
	svc := NewScreeningService(queue)

	account := createAccount(t, db, models.ProfileStatusActive)
	account.Bio = "add me on snapchat for spicy pics"
	require.NoError(t, db.Save(account).Error)

	svc.ScreenProfile(account)

	n, err := queue.CountForAccount(account.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestScreenProfileSkipsBelowThreshold(t *testing.T) {
	db := openTestDB(t)
	queue := NewQueueService(db)
	svc := NewScreeningService(queue)

	account := createAccount(t, db, models.ProfileStatusActive)

	svc.ScreenProfile(account)

	n, err := queue.CountForAccount(account.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
