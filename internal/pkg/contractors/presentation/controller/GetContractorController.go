package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/persistence/repository/adapter"
)

// GetContractorController serves the public contractor detail page.
type GetContractorController struct {
	UC *usecase.GetContractorUseCase
}

func NewGetContractorController(pool *pgxpool.Pool) *GetContractorController {
	repo := adapter.NewPgContractorRepository(pool)
	return &GetContractorController{UC: usecase.NewGetContractorUseCase(repo)}
}

func (h *GetContractorController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		contractorID := c.Param("contractorId")
		if contractorID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "contractorId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		detail, err := h.UC.Execute(ctx, contractorID)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		portfolio := make([]portfolioResponse, 0, len(detail.Portfolio))
		for i := range detail.Portfolio {
			portfolio = append(portfolio, toPortfolioResponse(&detail.Portfolio[i]))
		}
		certs := make([]certificationResponse, 0, len(detail.Certifications))
		for i := range detail.Certifications {
			certs = append(certs, toCertificationResponse(&detail.Certifications[i]))
		}

		c.JSON(http.StatusOK, gin.H{
			"profile":        toProfileResponse(detail.Profile),
			"portfolio":      portfolio,
			"certifications": certs,
		})
	}
}
