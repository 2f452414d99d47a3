package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCleanText(t *testing.T) {
	s := NewAnalyzer().Analyze("The work was excellent and very professional, delivered on schedule.")

	assert.Zero(t, s.Profanity)
	assert.Zero(t, s.Toxicity)
	assert.Zero(t, s.Spam)
	assert.Equal(t, 1.0, s.Sentiment)
	assert.Equal(t, RiskLow, ClassifyRisk(s))
}

func TestAnalyzeEmptyText(t *testing.T) {
	assert.Equal(t, Scores{}, NewAnalyzer().Analyze("   "))
}

func TestAnalyzeProfanity(t *testing.T) {
	s := NewAnalyzer().Analyze("this shit contractor did a fuck awful job")

	assert.InDelta(t, 0.5, s.Profanity, 0.001)
	assert.Equal(t, RiskMedium, ClassifyRisk(s))
}

func TestAnalyzeToxicityClampsAtOne(t *testing.T) {
	s := NewAnalyzer().Analyze("you are an idiot and a loser, a pathetic moron")

	assert.Equal(t, 1.0, s.Toxicity)
	assert.Equal(t, RiskCritical, ClassifyRisk(s))
}

func TestAnalyzeSpamSignals(t *testing.T) {
	s := NewAnalyzer().Analyze("Click here to buy now! Limited time offer, guaranteed winner: http://spam.example/win for $5000")

	assert.Equal(t, 1.0, s.Spam)
}

func TestAnalyzeRepeatedRunCountsAsSpam(t *testing.T) {
	s := NewAnalyzer().Analyze("amaaaaazing deal, buy now")

	assert.InDelta(t, 0.4, s.Spam, 0.001)
	assert.False(t, hasRepeatedRun("amaaazing", 5))
	assert.True(t, hasRepeatedRun("amaaaaazing", 5))
}

func TestAnalyzeNegativeSentiment(t *testing.T) {
	s := NewAnalyzer().Analyze("terrible and awful, the worst scam, total waste")

	assert.Equal(t, -1.0, s.Sentiment)
	assert.Equal(t, RiskLow, ClassifyRisk(s))
}

func TestClassifyRiskThresholds(t *testing.T) {
	assert.Equal(t, RiskLow, ClassifyRisk(Scores{Toxicity: 0.29}))
	assert.Equal(t, RiskMedium, ClassifyRisk(Scores{Toxicity: 0.3}))
	assert.Equal(t, RiskHigh, ClassifyRisk(Scores{Spam: 0.6}))
	assert.Equal(t, RiskCritical, ClassifyRisk(Scores{Profanity: 0.8}))
}

func TestQueuePriority(t *testing.T) {
	assert.Equal(t, "urgent", QueuePriority(RiskCritical))
	assert.Equal(t, "high", QueuePriority(RiskHigh))
	assert.Equal(t, "normal", QueuePriority(RiskMedium))
	assert.Equal(t, "normal", QueuePriority(RiskLow))
}

func TestNewContentFilterVerdicts(t *testing.T) {
	low := NewContentFilter(ContentReview, "r1", Scores{Toxicity: 0.1})
	assert.True(t, low.IsApproved)
	assert.False(t, low.RequiresReview)

	medium := NewContentFilter(ContentReview, "r2", Scores{Toxicity: 0.4})
	assert.True(t, medium.IsApproved)
	assert.False(t, medium.RequiresReview)

	high := NewContentFilter(ContentReview, "r3", Scores{Spam: 0.7})
	assert.False(t, high.IsApproved)
	assert.True(t, high.RequiresReview)

	critical := NewContentFilter(ContentMessage, "m1", Scores{Profanity: 0.9})
	assert.False(t, critical.IsApproved)
	assert.True(t, critical.RequiresReview)
	assert.Equal(t, RiskCritical, critical.RiskLevel)
}

func TestRuleMatchesIgnoresCase(t *testing.T) {
	rule := Rule{Keywords: []string{"Crypto", "pyramid"}}

	assert.True(t, rule.Matches("Invest in CRYPTO today"))
	assert.True(t, rule.Matches("classic Pyramid scheme"))
	assert.False(t, rule.Matches("an honest plumbing quote"))
}

func TestRuleMatchesPatterns(t *testing.T) {
	rule := Rule{Patterns: []string{`\b\d{10,}\b`, `(bad[`, ""}}

	assert.True(t, rule.Matches("call me at 79991234567 instead"), "valid pattern should match")
	assert.False(t, rule.Matches("a normal message"), "invalid and empty patterns are skipped")
}

func TestNewReportValidation(t *testing.T) {
	report, err := NewReport(Report{
		ReporterID:  "u1",
		ContentKind: ContentReview,
		ContentID:   "r1",
		ReportType:  "spam",
		Description: "links to an external store",
	})
	require.NoError(t, err)
	assert.Equal(t, ReportPending, report.Status)

	_, err = NewReport(Report{ContentKind: ContentReview, ContentID: "r1", ReportType: "grumpy", Description: "x"})
	assert.ErrorIs(t, err, ErrInvalidReportType)

	_, err = NewReport(Report{ContentKind: ContentReview, ContentID: "r1", ReportType: "spam", Description: "  "})
	assert.ErrorIs(t, err, ErrMissingDescription)

	_, err = NewReport(Report{ContentKind: "meme", ContentID: "r1", ReportType: "spam", Description: "x"})
	assert.ErrorIs(t, err, ErrUnknownContentKind)
}
