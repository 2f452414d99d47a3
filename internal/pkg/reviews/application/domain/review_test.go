package reviews

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReviewDefaults(t *testing.T) {
	r, err := NewReview(Review{
		ClientID:     "u1",
		ContractorID: "c1",
		Rating:       4,
		Comment:      "Solid work, minor delays.",
		IsFeatured:   true, // clients cannot feature their own reviews
		IsPublic:     false,
	})
	require.NoError(t, err)

	assert.False(t, r.IsFeatured)
	assert.True(t, r.IsPublic)
	assert.False(t, r.IsVerified)
}

func TestNewReviewRatingBounds(t *testing.T) {
	_, err := NewReview(Review{Rating: 0, Comment: "x"})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = NewReview(Review{Rating: 6, Comment: "x"})
	assert.ErrorIs(t, err, ErrInvalidRating)

	bad := 7
	_, err = NewReview(Review{Rating: 4, QualityRating: &bad, Comment: "x"})
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestNewReviewRequiresComment(t *testing.T) {
	_, err := NewReview(Review{Rating: 5, Comment: "   "})
	assert.ErrorIs(t, err, ErrMissingComment)
}

func TestNewResponseRequiresText(t *testing.T) {
	_, err := NewResponse(Response{ReviewID: "r1", ResponseText: ""})
	assert.Error(t, err)

	resp, err := NewResponse(Response{ReviewID: "r1", ResponseText: "Thanks for the feedback."})
	require.NoError(t, err)
	assert.Equal(t, "r1", resp.ReviewID)
}
