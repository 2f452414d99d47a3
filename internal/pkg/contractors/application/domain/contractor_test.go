package contractors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfileDefaults(t *testing.T) {
	p, err := NewProfile(Profile{UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, ExperienceBeginner, p.ExperienceLevel)
	assert.Equal(t, 24, p.ResponseTimeHours)
	assert.Equal(t, 25, p.ServiceRadius)
}

func TestNewProfileValidation(t *testing.T) {
	_, err := NewProfile(Profile{})
	assert.ErrorIs(t, err, ErrMissingBusinessRef)

	_, err = NewProfile(Profile{UserID: "u1", ExperienceLevel: "guru"})
	assert.ErrorIs(t, err, ErrInvalidExperience)

	_, err = NewProfile(Profile{UserID: "u1", HourlyRateMin: 90, HourlyRateMax: 50})
	assert.ErrorIs(t, err, ErrInvalidRateRange)
}

func TestNextRating(t *testing.T) {
	// First review sets the average outright.
	assert.InDelta(t, 4.0, NextRating(0, 0, 4), 1e-9)

	// (4.5*2 + 3) / 3 = 4.0
	assert.InDelta(t, 4.0, NextRating(4.5, 2, 3), 1e-9)

	// A five-star review nudges a long history only slightly.
	next := NextRating(4.0, 99, 5)
	assert.InDelta(t, 4.01, next, 1e-9)
}

func TestCertificationExpiry(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	assert.False(t, (&Certification{}).IsExpired(now), "no expiry date means never expired")
	assert.True(t, (&Certification{ExpiryDate: &past}).IsExpired(now))
	assert.False(t, (&Certification{ExpiryDate: &future}).IsExpired(now))
}

func TestNewCertificationNeverSelfVerified(t *testing.T) {
	cert, err := NewCertification(Certification{
		ContractorID:        "c1",
		Name:                "Master Electrician",
		IssuingOrganization: "State Board",
		IsVerified:          true,
	})
	require.NoError(t, err)
	assert.False(t, cert.IsVerified)
}
