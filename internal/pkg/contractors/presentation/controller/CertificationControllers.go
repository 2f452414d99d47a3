package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	contractors "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/contractors/persistence/repository/adapter"
)

type certificationRequest struct {
	Name                string  `json:"name" binding:"required"`
	IssuingOrganization string  `json:"issuing_organization" binding:"required"`
	IssueDate           string  `json:"issue_date"`
	ExpiryDate          *string `json:"expiry_date"`
}

func (r certificationRequest) toDomain() (contractors.Certification, error) {
	cert := contractors.Certification{
		Name:                r.Name,
		IssuingOrganization: r.IssuingOrganization,
	}
	if r.IssueDate != "" {
		d, err := time.Parse("2006-01-02", r.IssueDate)
		if err != nil {
			return cert, err
		}
		cert.IssueDate = d
	}
	if r.ExpiryDate != nil && *r.ExpiryDate != "" {
		d, err := time.Parse("2006-01-02", *r.ExpiryDate)
		if err != nil {
			return cert, err
		}
		cert.ExpiryDate = &d
	}
	return cert, nil
}

// ListMyCertificationsController serves the caller's credentials.
type ListMyCertificationsController struct {
	UC *usecase.ManageCertificationsUseCase
}

func NewListMyCertificationsController(pool *pgxpool.Pool) *ListMyCertificationsController {
	return &ListMyCertificationsController{UC: usecase.NewManageCertificationsUseCase(adapter.NewPgContractorRepository(pool))}
}

func (h *ListMyCertificationsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		certs, err := h.UC.List(ctx, c.GetString(middleware.CtxUserID))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		out := make([]certificationResponse, 0, len(certs))
		for i := range certs {
			out = append(out, toCertificationResponse(&certs[i]))
		}
		c.JSON(http.StatusOK, gin.H{"certifications": out})
	}
}

// CreateCertificationController records a new credential for the caller.
type CreateCertificationController struct {
	UC *usecase.ManageCertificationsUseCase
}

func NewCreateCertificationController(pool *pgxpool.Pool) *CreateCertificationController {
	return &CreateCertificationController{UC: usecase.NewManageCertificationsUseCase(adapter.NewPgContractorRepository(pool))}
}

func (h *CreateCertificationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req certificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cert, err := req.toDomain()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		created, err := h.UC.Create(ctx, c.GetString(middleware.CtxUserID), cert)
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, toCertificationResponse(created))
	}
}

// DeleteCertificationController removes a credential owned by the caller.
type DeleteCertificationController struct {
	UC *usecase.ManageCertificationsUseCase
}

func NewDeleteCertificationController(pool *pgxpool.Pool) *DeleteCertificationController {
	return &DeleteCertificationController{UC: usecase.NewManageCertificationsUseCase(adapter.NewPgContractorRepository(pool))}
}

func (h *DeleteCertificationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		certID := c.Param("certId")
		if certID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "certId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Delete(ctx, c.GetString(middleware.CtxUserID), certID); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "certification removed"})
	}
}
