package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mahmut0ff/HandshakeMeBackend/internal/middleware"
	accounts "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/usecase"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/persistence/repository/adapter"
)

type addressRequest struct {
	Title         string   `json:"title" binding:"required"`
	StreetAddress string   `json:"street_address" binding:"required"`
	City          string   `json:"city" binding:"required"`
	State         string   `json:"state"`
	PostalCode    string   `json:"postal_code"`
	Country       string   `json:"country"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	IsDefault     bool     `json:"is_default"`
}

func (r addressRequest) toDomain(userID, addressID string) accounts.Address {
	return accounts.Address{
		ID:            addressID,
		UserID:        userID,
		Title:         r.Title,
		StreetAddress: r.StreetAddress,
		City:          r.City,
		State:         r.State,
		PostalCode:    r.PostalCode,
		Country:       r.Country,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		IsDefault:     r.IsDefault,
	}
}

// ListAddressesController serves the caller's saved addresses.
type ListAddressesController struct {
	UC *usecase.ManageAddressesUseCase
}

func NewListAddressesController(pool *pgxpool.Pool) *ListAddressesController {
	return &ListAddressesController{UC: usecase.NewManageAddressesUseCase(adapter.NewPgUserRepository(pool))}
}

func (h *ListAddressesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		list, err := h.UC.List(ctx, c.GetString(middleware.CtxUserID))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		out := make([]addressResponse, 0, len(list))
		for i := range list {
			out = append(out, toAddressResponse(&list[i]))
		}
		c.JSON(http.StatusOK, gin.H{"addresses": out})
	}
}

// CreateAddressController adds a saved address for the caller.
type CreateAddressController struct {
	UC *usecase.ManageAddressesUseCase
}

func NewCreateAddressController(pool *pgxpool.Pool) *CreateAddressController {
	return &CreateAddressController{UC: usecase.NewManageAddressesUseCase(adapter.NewPgUserRepository(pool))}
}

func (h *CreateAddressController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		addr, err := h.UC.Create(ctx, req.toDomain(c.GetString(middleware.CtxUserID), ""))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, toAddressResponse(addr))
	}
}

// UpdateAddressController replaces a saved address owned by the caller.
type UpdateAddressController struct {
	UC *usecase.ManageAddressesUseCase
}

func NewUpdateAddressController(pool *pgxpool.Pool) *UpdateAddressController {
	return &UpdateAddressController{UC: usecase.NewManageAddressesUseCase(adapter.NewPgUserRepository(pool))}
}

func (h *UpdateAddressController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		addressID := c.Param("addressId")
		if addressID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "addressId is required"})
			return
		}
		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		addr, err := h.UC.Update(ctx, req.toDomain(c.GetString(middleware.CtxUserID), addressID))
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, toAddressResponse(addr))
	}
}

// DeleteAddressController removes a saved address owned by the caller.
type DeleteAddressController struct {
	UC *usecase.ManageAddressesUseCase
}

func NewDeleteAddressController(pool *pgxpool.Pool) *DeleteAddressController {
	return &DeleteAddressController{UC: usecase.NewManageAddressesUseCase(adapter.NewPgUserRepository(pool))}
}

func (h *DeleteAddressController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		addressID := c.Param("addressId")
		if addressID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "addressId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Delete(ctx, c.GetString(middleware.CtxUserID), addressID); err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "address removed"})
	}
}
