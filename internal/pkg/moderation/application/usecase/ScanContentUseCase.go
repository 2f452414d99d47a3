package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/logger"
	moderation "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/persistence/repository/port"
)

// ScanContentUseCase runs the analyzer and staff rules over one piece of
// content, stores the verdict and escalates risky content: high and critical
// risk lands in the review queue and is hidden until a moderator clears it.
type ScanContentUseCase struct {
	Repo     repository.ModerationRepository
	Analyzer *moderation.Analyzer
}

func NewScanContentUseCase(repo repository.ModerationRepository) *ScanContentUseCase {
	return &ScanContentUseCase{Repo: repo, Analyzer: moderation.NewAnalyzer()}
}

func (uc *ScanContentUseCase) Execute(ctx context.Context, kind, contentID string) (*moderation.ContentFilter, error) {
	text, err := uc.Repo.FetchContentText(ctx, kind, contentID)
	if err != nil {
		if errors.Is(err, moderation.ErrNotFound) || errors.Is(err, moderation.ErrUnknownContentKind) {
			// Content deleted before the scan ran, or an unroutable kind; both
			// are terminal, retrying cannot help.
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	scores := uc.Analyzer.Analyze(text)

	// Staff rules act as a floor on top of the analyzer.
	var matchedRule *moderation.Rule
	rules, err := uc.Repo.ListActiveRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	for i := range rules {
		if rules[i].Matches(text) {
			matchedRule = &rules[i]
			switch rules[i].RuleType {
			case "profanity":
				scores.Profanity = maxf(scores.Profanity, rules[i].ConfidenceThreshold)
			case "spam":
				scores.Spam = maxf(scores.Spam, rules[i].ConfidenceThreshold)
			default:
				scores.Toxicity = maxf(scores.Toxicity, rules[i].ConfidenceThreshold)
			}
			break
		}
	}

	verdict := moderation.NewContentFilter(kind, contentID, scores)

	// A matched rule's action verb overrides the score-derived verdict.
	if matchedRule != nil {
		switch matchedRule.Action {
		case moderation.RuleAutoApprove:
			verdict.RequiresReview = false
			verdict.IsApproved = true
		case moderation.RuleAutoReject:
			verdict.RequiresReview = false
			verdict.IsApproved = false
		case moderation.RuleQuarantine:
			verdict.RequiresReview = true
			verdict.IsApproved = false
		}
	}

	filterID, err := uc.Repo.SaveFilter(ctx, verdict)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	verdict.ID = filterID

	if verdict.RequiresReview {
		if _, err := uc.Repo.EnqueueItem(ctx, moderation.QueueItem{
			ContentKind: kind,
			ContentID:   contentID,
			Priority:    moderation.QueuePriority(verdict.RiskLevel),
			FilterID:    &filterID,
		}); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		action := moderation.Action{
			ContentKind: kind,
			ContentID:   contentID,
			Action:      moderation.ActionFlag,
			Reason:      fmt.Sprintf("automated scan: %s risk", verdict.RiskLevel),
			IsAutomated: true,
			Metadata: map[string]any{
				"profanity_score": scores.Profanity,
				"spam_score":      scores.Spam,
				"toxicity_score":  scores.Toxicity,
				"sentiment_score": scores.Sentiment,
			},
		}
		if matchedRule != nil {
			action.RuleID = &matchedRule.ID
			action.Reason = fmt.Sprintf("rule %q matched: %s risk", matchedRule.Name, verdict.RiskLevel)
		}
		if _, err := uc.Repo.RecordAction(ctx, action); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}

	if !verdict.IsApproved {
		if err := uc.Repo.HideContent(ctx, kind, contentID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		hide := moderation.Action{
			ContentKind: kind,
			ContentID:   contentID,
			Action:      moderation.ActionHide,
			Reason:      fmt.Sprintf("automated scan: %s risk", verdict.RiskLevel),
			IsAutomated: true,
		}
		if matchedRule != nil {
			hide.RuleID = &matchedRule.ID
			hide.Reason = fmt.Sprintf("rule %q action %s", matchedRule.Name, matchedRule.Action)
		}
		if _, err := uc.Repo.RecordAction(ctx, hide); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		logger.Warningf("moderation auto-hid %s %s", kind, contentID)
	}

	return &verdict, nil
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
