package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	reviews "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/reviews/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/reviews/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/reviews/persistence/repository/adapter"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, reviews.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, reviews.ErrDuplicate), errors.Is(err, reviews.ErrAlreadyAnswered):
		return http.StatusConflict
	case errors.Is(err, reviews.ErrForbidden), errors.Is(err, reviews.ErrSelfReview):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

type responseResponse struct {
	ID           string    `json:"id"`
	ReviewID     string    `json:"review_id"`
	ResponseText string    `json:"response_text"`
	CreatedAt    time.Time `json:"created_at"`
}

type reviewResponse struct {
	ID                    string            `json:"id"`
	ClientID              string            `json:"client_id"`
	ClientName            string            `json:"client_name,omitempty"`
	ContractorID          string            `json:"contractor_id"`
	ProjectID             *string           `json:"project_id,omitempty"`
	Rating                int               `json:"rating"`
	QualityRating         *int              `json:"quality_rating,omitempty"`
	CommunicationRating   *int              `json:"communication_rating,omitempty"`
	TimelinessRating      *int              `json:"timeliness_rating,omitempty"`
	ProfessionalismRating *int              `json:"professionalism_rating,omitempty"`
	Title                 string            `json:"title,omitempty"`
	Comment               string            `json:"comment"`
	IsVerified            bool              `json:"is_verified"`
	IsFeatured            bool              `json:"is_featured"`
	HelpfulCount          int               `json:"helpful_count"`
	Response              *responseResponse `json:"response,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
}

func toReviewResponse(r reviews.Review) reviewResponse {
	out := reviewResponse{
		ID:                    r.ID,
		ClientID:              r.ClientID,
		ClientName:            r.ClientName,
		ContractorID:          r.ContractorID,
		ProjectID:             r.ProjectID,
		Rating:                r.Rating,
		QualityRating:         r.QualityRating,
		CommunicationRating:   r.CommunicationRating,
		TimelinessRating:      r.TimelinessRating,
		ProfessionalismRating: r.ProfessionalismRating,
		Title:                 r.Title,
		Comment:               r.Comment,
		IsVerified:            r.IsVerified,
		IsFeatured:            r.IsFeatured,
		HelpfulCount:          r.HelpfulCount,
		CreatedAt:             r.CreatedAt,
	}
	if r.Response != nil {
		out.Response = &responseResponse{
			ID:           r.Response.ID,
			ReviewID:     r.Response.ReviewID,
			ResponseText: r.Response.ResponseText,
			CreatedAt:    r.Response.CreatedAt,
		}
	}
	return out
}

// CreateReviewController submits a review of a contractor.
type CreateReviewController struct {
	UC *usecase.CreateReviewUseCase
}

func NewCreateReviewController(pool *pgxpool.Pool, q qport.Client) *CreateReviewController {
	return &CreateReviewController{UC: usecase.NewCreateReviewUseCase(adapter.NewPgReviewRepository(pool), q)}
}

type createReviewRequest struct {
	ContractorID          string  `json:"contractor_id" binding:"required"`
	ProjectID             *string `json:"project_id"`
	Rating                int     `json:"rating" binding:"required"`
	QualityRating         *int    `json:"quality_rating"`
	CommunicationRating   *int    `json:"communication_rating"`
	TimelinessRating      *int    `json:"timeliness_rating"`
	ProfessionalismRating *int    `json:"professionalism_rating"`
	Title                 string  `json:"title"`
	Comment               string  `json:"comment" binding:"required"`
}

func (h *CreateReviewController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		review, err := h.UC.Execute(ctx, reviews.Review{
			ClientID:              c.GetString(middleware.CtxUserID),
			ContractorID:          req.ContractorID,
			ProjectID:             req.ProjectID,
			Rating:                req.Rating,
			QualityRating:         req.QualityRating,
			CommunicationRating:   req.CommunicationRating,
			TimelinessRating:      req.TimelinessRating,
			ProfessionalismRating: req.ProfessionalismRating,
			Title:                 req.Title,
			Comment:               req.Comment,
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, toReviewResponse(*review))
	}
}

// ListReviewsController pages a contractor's public reviews.
type ListReviewsController struct {
	UC *usecase.ListReviewsUseCase
}

func NewListReviewsController(pool *pgxpool.Pool) *ListReviewsController {
	return &ListReviewsController{UC: usecase.NewListReviewsUseCase(adapter.NewPgReviewRepository(pool))}
}

func (h *ListReviewsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		page, err := h.UC.Execute(ctx, c.Param("contractorId"), limit, offset)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		out := make([]reviewResponse, 0, len(page.Reviews))
		for _, r := range page.Reviews {
			out = append(out, toReviewResponse(r))
		}
		c.JSON(http.StatusOK, gin.H{"reviews": out, "total": page.Total})
	}
}

// RespondToReviewController posts the contractor's reply.
type RespondToReviewController struct {
	UC *usecase.RespondToReviewUseCase
}

func NewRespondToReviewController(pool *pgxpool.Pool, q qport.Client) *RespondToReviewController {
	return &RespondToReviewController{UC: usecase.NewRespondToReviewUseCase(adapter.NewPgReviewRepository(pool), q)}
}

type respondRequest struct {
	ResponseText string `json:"response_text" binding:"required"`
}

func (h *RespondToReviewController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req respondRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		response, err := h.UC.Execute(ctx, c.Param("reviewId"), c.GetString(middleware.CtxUserID), req.ResponseText)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, responseResponse{
			ID:           response.ID,
			ReviewID:     response.ReviewID,
			ResponseText: response.ResponseText,
			CreatedAt:    response.CreatedAt,
		})
	}
}

// VoteHelpfulController marks a review helpful or not.
type VoteHelpfulController struct {
	UC *usecase.VoteHelpfulUseCase
}

func NewVoteHelpfulController(pool *pgxpool.Pool) *VoteHelpfulController {
	return &VoteHelpfulController{UC: usecase.NewVoteHelpfulUseCase(adapter.NewPgReviewRepository(pool))}
}

type voteRequest struct {
	IsHelpful *bool `json:"is_helpful" binding:"required"`
}

func (h *VoteHelpfulController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req voteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Execute(ctx, c.Param("reviewId"), c.GetString(middleware.CtxUserID), *req.IsHelpful); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"is_helpful": *req.IsHelpful})
	}
}
