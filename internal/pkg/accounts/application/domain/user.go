package accounts

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// UserType distinguishes the two roles the platform connects.
type UserType string

const (
	UserTypeClient     UserType = "client"
	UserTypeContractor UserType = "contractor"
)

// Domain-level errors for account behaviors
var (
	ErrInvalidEmail    = errors.New("accounts: invalid email address")
	ErrInvalidPhone    = errors.New("accounts: phone number must be in the format '+999999999' with up to 15 digits")
	ErrInvalidUserType = errors.New("accounts: user_type must be client or contractor")
	ErrWeakPassword    = errors.New("accounts: password must be at least 8 characters")
	ErrBioTooLong      = errors.New("accounts: bio must be at most 500 characters")
	ErrDuplicate       = errors.New("accounts: email or username already registered")
	ErrNotFound        = errors.New("accounts: not found")
	ErrBadCredentials  = errors.New("accounts: invalid email or password")
	ErrInactive        = errors.New("accounts: account is suspended")
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+?1?\d{9,15}$`)
)

// User is a platform account, either a client or a contractor.
type User struct {
	ID              string    `db:"id"`
	Email           string    `db:"email"`
	Username        string    `db:"username"`
	PasswordHash    string    `db:"password_hash"`
	FirstName       string    `db:"first_name"`
	LastName        string    `db:"last_name"`
	PhoneNumber     *string   `db:"phone_number"`
	UserType        UserType  `db:"user_type"`
	AvatarURL       *string   `db:"avatar_url"`
	Bio             string    `db:"bio"`
	Location        string    `db:"location"`
	Skills          []string  `db:"skills"`
	HourlyRate      string    `db:"hourly_rate"`
	ExperienceYears int       `db:"experience_years"`
	IsVerified      bool      `db:"is_verified"`
	IsStaff         bool      `db:"is_staff"`
	IsActive        bool      `db:"is_active"`
	IsOnline        bool      `db:"is_online"`
	LastSeen        time.Time `db:"last_seen"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// FullName joins first and last name, trimming when either is empty.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NewUser validates a prospective account. The password hash is set by the
// use case after validation, never here.
func NewUser(u User) (*User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Username = strings.TrimSpace(u.Username)

	if !emailRe.MatchString(u.Email) {
		return nil, ErrInvalidEmail
	}
	if u.Username == "" {
		u.Username = u.Email[:strings.Index(u.Email, "@")]
	}
	if u.UserType == "" {
		u.UserType = UserTypeClient
	}
	if u.UserType != UserTypeClient && u.UserType != UserTypeContractor {
		return nil, ErrInvalidUserType
	}
	if err := ValidatePhone(u.PhoneNumber); err != nil {
		return nil, err
	}
	if len(u.Bio) > 500 {
		return nil, ErrBioTooLong
	}
	if u.Skills == nil {
		u.Skills = []string{}
	}
	u.IsActive = true
	return &u, nil
}

// ValidatePhone accepts nil (unset) or an E.164-ish number.
func ValidatePhone(phone *string) error {
	if phone == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*phone)
	if trimmed == "" {
		return nil
	}
	if !phoneRe.MatchString(trimmed) {
		return ErrInvalidPhone
	}
	return nil
}

// ValidatePassword enforces the minimum password policy.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Address is a saved location belonging to a user. At most one address per
// user may be the default.
type Address struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	Title         string    `db:"title"`
	StreetAddress string    `db:"street_address"`
	City          string    `db:"city"`
	State         string    `db:"state"`
	PostalCode    string    `db:"postal_code"`
	Country       string    `db:"country"`
	Latitude      *float64  `db:"latitude"`
	Longitude     *float64  `db:"longitude"`
	IsDefault     bool      `db:"is_default"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// NewAddress validates a prospective address.
func NewAddress(a Address) (*Address, error) {
	if a.UserID == "" {
		return nil, errors.New("accounts: address requires a user")
	}
	if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.StreetAddress) == "" || strings.TrimSpace(a.City) == "" {
		return nil, errors.New("accounts: address requires title, street and city")
	}
	if a.Country == "" {
		a.Country = "USA"
	}
	return &a, nil
}

// ProfileStats summarizes a user's marketplace activity.
type ProfileStats struct {
	CompletedProjects int     `json:"completed_projects"`
	TotalReviews      int     `json:"total_reviews"`
	AverageRating     float64 `json:"average_rating"`
	MemberSince       int     `json:"member_since"`
}
