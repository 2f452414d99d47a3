package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	moderation "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/persistence/repository/adapter"
)

type ruleResponse struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description,omitempty"`
	RuleType            string   `json:"rule_type"`
	Keywords            []string `json:"keywords"`
	Patterns            []string `json:"patterns"`
	ConfidenceThreshold float64  `json:"confidence_threshold"`
	Action              string   `json:"action"`
	IsActive            bool     `json:"is_active"`
}

func toRuleResponse(r moderation.Rule) ruleResponse {
	return ruleResponse{
		ID:                  r.ID,
		Name:                r.Name,
		Description:         r.Description,
		RuleType:            r.RuleType,
		Keywords:            r.Keywords,
		Patterns:            r.Patterns,
		ConfidenceThreshold: r.ConfidenceThreshold,
		Action:              r.Action,
		IsActive:            r.IsActive,
	}
}

// ListRulesController returns the active keyword rules.
type ListRulesController struct {
	UC *usecase.ManageRulesUseCase
}

func NewListRulesController(pool *pgxpool.Pool) *ListRulesController {
	return &ListRulesController{UC: usecase.NewManageRulesUseCase(adapter.NewPgModerationRepository(pool))}
}

func (h *ListRulesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		rules, err := h.UC.List(ctx)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		out := make([]ruleResponse, 0, len(rules))
		for _, r := range rules {
			out = append(out, toRuleResponse(r))
		}
		c.JSON(http.StatusOK, gin.H{"rules": out})
	}
}

// CreateRuleController adds a keyword rule to the automated filter.
type CreateRuleController struct {
	UC *usecase.ManageRulesUseCase
}

func NewCreateRuleController(pool *pgxpool.Pool) *CreateRuleController {
	return &CreateRuleController{UC: usecase.NewManageRulesUseCase(adapter.NewPgModerationRepository(pool))}
}

type createRuleRequest struct {
	Name                string   `json:"name" binding:"required"`
	Description         string   `json:"description"`
	RuleType            string   `json:"rule_type"`
	Keywords            []string `json:"keywords" binding:"required"`
	Patterns            []string `json:"patterns"`
	ConfidenceThreshold float64  `json:"confidence_threshold"`
	Action              string   `json:"action"`
}

func (h *CreateRuleController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createRuleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		rule, err := h.UC.Create(ctx, moderation.Rule{
			Name:                req.Name,
			Description:         req.Description,
			RuleType:            req.RuleType,
			Keywords:            req.Keywords,
			Patterns:            req.Patterns,
			ConfidenceThreshold: req.ConfidenceThreshold,
			Action:              req.Action,
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, toRuleResponse(*rule))
	}
}

// DisableRuleController switches a rule off without deleting its history.
type DisableRuleController struct {
	UC *usecase.ManageRulesUseCase
}

func NewDisableRuleController(pool *pgxpool.Pool) *DisableRuleController {
	return &DisableRuleController{UC: usecase.NewManageRulesUseCase(adapter.NewPgModerationRepository(pool))}
}

func (h *DisableRuleController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Disable(ctx, c.Param("ruleId")); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"is_active": false})
	}
}
