package moderation

import (
	"regexp"
	"strings"
)

// Scores produced by the content analyzer. Profanity, spam and toxicity are
// 0..1; sentiment runs -1..1.
type Scores struct {
	Profanity float64 `json:"profanity_score"`
	Spam      float64 `json:"spam_score"`
	Toxicity  float64 `json:"toxicity_score"`
	Sentiment float64 `json:"sentiment_score"`
}

// Max returns the highest of the three risk-bearing scores.
func (s Scores) Max() float64 {
	m := s.Profanity
	if s.Spam > m {
		m = s.Spam
	}
	if s.Toxicity > m {
		m = s.Toxicity
	}
	return m
}

var (
	profanityWords = []string{
		"damn", "hell", "crap", "bastard", "bitch", "shit", "fuck", "asshole",
	}
	toxicityWords = []string{
		"idiot", "stupid", "moron", "loser", "scum", "trash", "hate you",
		"kill you", "hurt you", "worthless", "pathetic",
	}
	spamPhrases = []string{
		"click here", "buy now", "limited time", "act now", "free money",
		"guaranteed", "no risk", "winner", "congratulations you",
	}
	positiveWords = []string{
		"great", "excellent", "amazing", "professional", "recommend", "fantastic",
		"wonderful", "reliable", "prompt", "quality", "happy", "perfect",
	}
	negativeWords = []string{
		"terrible", "awful", "horrible", "worst", "scam", "fraud", "rude",
		"late", "sloppy", "disappointed", "never again", "waste",
	}

	urlRe     = regexp.MustCompile(`https?://\S+`)
	moneyRe   = regexp.MustCompile(`\$\d{3,}|\d+%\s*(off|discount)`)
	allCapsRe = regexp.MustCompile(`\b[A-Z]{5,}\b`)
	wordSeqRe = regexp.MustCompile(`[a-z']+`)
)

// Analyzer scores free text for profanity, spam, toxicity and sentiment.
// It is deterministic and dependency-free so it can run inline in worker tasks.
type Analyzer struct{}

func NewAnalyzer() *Analyzer { return &Analyzer{} }

func (a *Analyzer) Analyze(text string) Scores {
	lower := strings.ToLower(text)
	words := wordSeqRe.FindAllString(lower, -1)
	total := len(words)
	if total == 0 {
		return Scores{}
	}

	var s Scores
	s.Profanity = clamp01(float64(countHits(lower, profanityWords)) * 0.25)
	s.Toxicity = clamp01(float64(countHits(lower, toxicityWords)) * 0.3)

	spamSignals := countHits(lower, spamPhrases)
	spamSignals += len(urlRe.FindAllString(text, -1))
	if hasRepeatedRun(lower, 5) {
		spamSignals++
	}
	if moneyRe.MatchString(lower) {
		spamSignals++
	}
	if len(allCapsRe.FindAllString(text, -1)) >= 2 {
		spamSignals++
	}
	s.Spam = clamp01(float64(spamSignals) * 0.2)

	pos := countHits(lower, positiveWords)
	neg := countHits(lower, negativeWords)
	if pos+neg > 0 {
		s.Sentiment = float64(pos-neg) / float64(pos+neg)
	}
	return s
}

// hasRepeatedRun reports whether text contains a run of n or more identical
// runes, e.g. "loooooong". RE2 has no backreferences, so this is a loop.
func hasRepeatedRun(text string, n int) bool {
	var prev rune
	run := 0
	for _, r := range text {
		if r == prev {
			run++
			if run >= n {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

func countHits(text string, needles []string) int {
	var n int
	for _, w := range needles {
		n += strings.Count(text, w)
	}
	return n
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
