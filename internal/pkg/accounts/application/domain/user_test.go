package accounts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserDefaults(t *testing.T) {
	u, err := NewUser(User{Email: "Jane.Doe@Example.COM "})
	require.NoError(t, err)

	assert.Equal(t, "jane.doe@example.com", u.Email)
	assert.Equal(t, "jane.doe", u.Username, "username defaults to the email local part")
	assert.Equal(t, UserTypeClient, u.UserType)
	assert.True(t, u.IsActive)
	assert.NotNil(t, u.Skills)
}

func TestNewUserRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		in   User
		want error
	}{
		{"bad email", User{Email: "not-an-email"}, ErrInvalidEmail},
		{"bad user type", User{Email: "a@b.co", UserType: "admin"}, ErrInvalidUserType},
		{"bio too long", User{Email: "a@b.co", Bio: strings.Repeat("x", 501)}, ErrBioTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser(tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidatePhone(t *testing.T) {
	ok := "+15551234567"
	bad := "555-123"
	empty := ""

	assert.NoError(t, ValidatePhone(nil))
	assert.NoError(t, ValidatePhone(&empty))
	assert.NoError(t, ValidatePhone(&ok))
	assert.ErrorIs(t, ValidatePhone(&bad), ErrInvalidPhone)
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword("short"), ErrWeakPassword)
	assert.NoError(t, ValidatePassword("longenough"))
}

func TestFullName(t *testing.T) {
	u := User{FirstName: "Jane", LastName: "Doe"}
	assert.Equal(t, "Jane Doe", u.FullName())

	u = User{FirstName: "Jane"}
	assert.Equal(t, "Jane", u.FullName())

	u = User{}
	assert.Equal(t, "", u.FullName())
}

func TestNewAddressDefaultsCountry(t *testing.T) {
	a, err := NewAddress(Address{UserID: "u1", Title: "Home", StreetAddress: "1 Main St", City: "Springfield"})
	require.NoError(t, err)
	assert.Equal(t, "USA", a.Country)

	_, err = NewAddress(Address{UserID: "u1"})
	assert.Error(t, err)
}
