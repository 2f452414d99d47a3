package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	contractors "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/persistence/repository/adapter"
)

// SearchContractorsController serves the public contractor directory.
type SearchContractorsController struct {
	UC *usecase.SearchContractorsUseCase
}

func NewSearchContractorsController(pool *pgxpool.Pool) *SearchContractorsController {
	repo := adapter.NewPgContractorRepository(pool)
	return &SearchContractorsController{UC: usecase.NewSearchContractorsUseCase(repo)}
}

func (h *SearchContractorsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		f := contractors.SearchFilter{
			CategoryID: c.Query("category"),
			SkillID:    c.Query("skill"),
			City:       c.Query("city"),
			Limit:      20,
		}
		if v := c.Query("min_rating"); v != "" {
			if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 {
				f.MinRating = n
			}
		}
		if v := c.Query("max_rate"); v != "" {
			if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 {
				f.MaxHourlyRate = n
			}
		}
		f.AvailableOnly = c.Query("available") == "true"
		f.VerifiedOnly = c.Query("verified") == "true"
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				f.Limit = n
			}
		}
		if v := c.Query("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				f.Offset = n
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		result, err := h.UC.Execute(ctx, f)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		out := make([]profileResponse, 0, len(result.Contractors))
		for i := range result.Contractors {
			out = append(out, toProfileResponse(&result.Contractors[i]))
		}
		c.JSON(http.StatusOK, gin.H{
			"contractors": out,
			"total":       result.Total,
			"limit":       f.Limit,
			"offset":      f.Offset,
		})
	}
}
