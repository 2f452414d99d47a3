package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	moderation "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/domain"
	repository "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/persistence/repository/port"
)

// ManageRulesUseCase lets staff maintain the keyword rule set.
type ManageRulesUseCase struct {
	Repo repository.ModerationRepository
}

func NewManageRulesUseCase(repo repository.ModerationRepository) *ManageRulesUseCase {
	return &ManageRulesUseCase{Repo: repo}
}

func (uc *ManageRulesUseCase) List(ctx context.Context) ([]moderation.Rule, error) {
	rules, err := uc.Repo.ListActiveRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if rules == nil {
		rules = []moderation.Rule{}
	}
	return rules, nil
}

func (uc *ManageRulesUseCase) Create(ctx context.Context, r moderation.Rule) (*moderation.Rule, error) {
	if strings.TrimSpace(r.Name) == "" {
		return nil, errors.New("moderation: rule name is required")
	}
	if len(r.Keywords) == 0 {
		return nil, errors.New("moderation: rule needs at least one keyword")
	}
	if r.ConfidenceThreshold <= 0 || r.ConfidenceThreshold > 1 {
		r.ConfidenceThreshold = 0.8
	}
	if r.Action == "" {
		r.Action = moderation.ActionFlag
	}
	if r.RuleType == "" {
		r.RuleType = "toxicity"
	}
	r.IsActive = true
	if r.Patterns == nil {
		r.Patterns = []string{}
	}

	id, err := uc.Repo.CreateRule(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	r.ID = id
	return &r, nil
}

func (uc *ManageRulesUseCase) Disable(ctx context.Context, ruleID string) error {
	if err := uc.Repo.SetRuleActive(ctx, ruleID, false); err != nil {
		if errors.Is(err, moderation.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
