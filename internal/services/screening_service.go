package services

import (
	"log/slog"
	"regexp"

	"github.com/kperez42/Celestia-sub000/internal/models"
)

// Words that flag a profile for review on their own.
var flaggedWords = []string{
	"escort", "onlyfans", "cashapp", "venmo", "paypal",
	"sugar daddy", "sugar baby", "findom",
	"crypto", "bitcoin", "forex", "investment",
	"telegram", "whatsapp", "snapchat", "kik",
	"porn", "nudes", "selling", "promo",
}

// enqueueThreshold is the suspicion score at or above which a screened
// profile is admitted into the moderation queue.
const enqueueThreshold = 0.3

// ScreeningService is the upstream scorer feeding the moderation queue: it
// scans profile text for policy-violation signals and enqueues the account
// with a suspicion score and the indicators that fired.
type ScreeningService struct {
	queue *QueueService

	flaggedWordRegexps []*regexp.Regexp
	urlPattern         *regexp.Regexp
	emailPattern       *regexp.Regexp
	phonePattern       *regexp.Regexp
}

func NewScreeningService(queue *QueueService) *ScreeningService {
	s := &ScreeningService{queue: queue}

	s.flaggedWordRegexps = make([]*regexp.Regexp, 0, len(flaggedWords))
	for _, word := range flaggedWords {
		s.flaggedWordRegexps = append(s.flaggedWordRegexps,
			regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(word)+`\b`))
	}

	s.urlPattern = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`)
	s.emailPattern = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	s.phonePattern = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}|\(\d{3}\)\s*\d{3}[-.\s]?\d{4}`)
	return s
}

// repeatedRunThreshold is how many consecutive identical characters count
// as a spam pattern ("heyyyyyyy", "!!!!!!!").
const repeatedRunThreshold = 6

// hasRepeatedRun scans for a run of repeatedRunThreshold or more identical
// runes. RE2 has no backreferences, so this is a plain loop.
func hasRepeatedRun(text string) bool {
	var prev rune
	run := 0
	for _, r := range text {
		if r == prev {
			run++
			if run >= repeatedRunThreshold {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// Score evaluates profile text and returns a suspicion score in [0,1] with
// the indicators that contributed to it.
func (s *ScreeningService) Score(text string) (float64, []string) {
	if text == "" {
		return 0, nil
	}

	var score float64
	var indicators []string

	for _, re := range s.flaggedWordRegexps {
		if re.MatchString(text) {
			score += 0.4
			indicators = append(indicators, "flagged_term")
			break
		}
	}
	if s.urlPattern.MatchString(text) {
		score += 0.3
		indicators = append(indicators, "url_in_bio")
	}
	if s.emailPattern.MatchString(text) || s.phonePattern.MatchString(text) {
		score += 0.3
		indicators = append(indicators, "contact_info_in_bio")
	}
	if hasRepeatedRun(text) {
		score += 0.2
		indicators = append(indicators, "spam_pattern")
	}

	if score > 1 {
		score = 1
	}
	return score, indicators
}

// ScreenProfile scores an account's profile text and enqueues the account
// for review when the score crosses the admission threshold. Screening is
// advisory and never blocks the profile write, so failures are only logged.
func (s *ScreeningService) ScreenProfile(account *models.Account) {
	score, indicators := s.Score(account.Name + " " + account.Bio)
	if score < enqueueThreshold {
		return
	}

	if _, err := s.queue.Enqueue(account.ID, score, indicators); err != nil {
		slog.Error("failed to enqueue flagged profile",
			"user_id", account.ID, "score", score, "error", err)
		return
	}
	slog.Info("profile flagged for review",
		"user_id", account.ID, "score", score, "indicators", indicators)
}
