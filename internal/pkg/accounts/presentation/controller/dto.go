package controller

import (
	"errors"
	"net/http"
	"time"

	accounts "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/domain"
	"github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/accounts/application/usecase"
)

// userResponse is the public JSON shape of an account. The password hash
// never leaves the persistence layer boundary unredacted.
type userResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	FullName        string    `json:"full_name"`
	PhoneNumber     *string   `json:"phone_number"`
	UserType        string    `json:"user_type"`
	AvatarURL       *string   `json:"avatar_url"`
	Bio             string    `json:"bio"`
	Location        string    `json:"location"`
	Skills          []string  `json:"skills"`
	HourlyRate      string    `json:"hourly_rate"`
	ExperienceYears int       `json:"experience_years"`
	IsVerified      bool      `json:"is_verified"`
	IsOnline        bool      `json:"is_online"`
	CreatedAt       time.Time `json:"created_at"`
}

func toUserResponse(u *accounts.User) userResponse {
	return userResponse{
		ID:              u.ID,
		Email:           u.Email,
		Username:        u.Username,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		FullName:        u.FullName(),
		PhoneNumber:     u.PhoneNumber,
		UserType:        string(u.UserType),
		AvatarURL:       u.AvatarURL,
		Bio:             u.Bio,
		Location:        u.Location,
		Skills:          u.Skills,
		HourlyRate:      u.HourlyRate,
		ExperienceYears: u.ExperienceYears,
		IsVerified:      u.IsVerified,
		IsOnline:        u.IsOnline,
		CreatedAt:       u.CreatedAt,
	}
}

type authResponse struct {
	User          userResponse `json:"user"`
	AccessToken   string       `json:"access_token"`
	AccessExpiry  time.Time    `json:"access_expiry"`
	RefreshToken  string       `json:"refresh_token"`
	RefreshExpiry time.Time    `json:"refresh_expiry"`
}

func toAuthResponse(r *usecase.AuthResult) authResponse {
	return authResponse{
		User:          toUserResponse(r.User),
		AccessToken:   r.AccessToken,
		AccessExpiry:  r.AccessExpiry,
		RefreshToken:  r.RefreshToken,
		RefreshExpiry: r.RefreshExpiry,
	}
}

type addressResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	StreetAddress string   `json:"street_address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	PostalCode    string   `json:"postal_code"`
	Country       string   `json:"country"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	IsDefault     bool     `json:"is_default"`
}

func toAddressResponse(a *accounts.Address) addressResponse {
	return addressResponse{
		ID:            a.ID,
		Title:         a.Title,
		StreetAddress: a.StreetAddress,
		City:          a.City,
		State:         a.State,
		PostalCode:    a.PostalCode,
		Country:       a.Country,
		Latitude:      a.Latitude,
		Longitude:     a.Longitude,
		IsDefault:     a.IsDefault,
	}
}

// statusForError maps accounts domain errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, accounts.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, accounts.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, accounts.ErrBadCredentials), errors.Is(err, usecase.ErrTokenRejected):
		return http.StatusUnauthorized
	case errors.Is(err, accounts.ErrInactive):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
