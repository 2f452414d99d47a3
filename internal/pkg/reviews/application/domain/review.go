package reviews

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("reviews: not found")
	ErrDuplicate       = errors.New("reviews: already exists")
	ErrForbidden       = errors.New("reviews: caller does not own this resource")
	ErrInvalidRating   = errors.New("reviews: rating must be between 1 and 5")
	ErrMissingComment  = errors.New("reviews: comment is required")
	ErrSelfReview      = errors.New("reviews: contractors cannot review themselves")
	ErrAlreadyAnswered = errors.New("reviews: review already has a response")
)

// Review is a client's rating of a contractor, optionally tied to a project.
type Review struct {
	ID                    string    `db:"id"`
	ClientID              string    `db:"client_id"`
	ContractorID          string    `db:"contractor_id"`
	ProjectID             *string   `db:"project_id"`
	Rating                int       `db:"rating"`
	QualityRating         *int      `db:"quality_rating"`
	CommunicationRating   *int      `db:"communication_rating"`
	TimelinessRating      *int      `db:"timeliness_rating"`
	ProfessionalismRating *int      `db:"professionalism_rating"`
	Title                 string    `db:"title"`
	Comment               string    `db:"comment"`
	IsVerified            bool      `db:"is_verified"`
	IsFeatured            bool      `db:"is_featured"`
	IsPublic              bool      `db:"is_public"`
	CreatedAt             time.Time `db:"created_at"`
	UpdatedAt             time.Time `db:"updated_at"`

	// Denormalized for listings.
	ClientName   string    `db:"-"`
	HelpfulCount int       `db:"-"`
	Response     *Response `db:"-"`
}

// NewReview validates a submission. Verification is decided by the caller
// from project history, never by the client.
func NewReview(r Review) (*Review, error) {
	if !validRating(r.Rating) {
		return nil, ErrInvalidRating
	}
	for _, sub := range []*int{r.QualityRating, r.CommunicationRating, r.TimelinessRating, r.ProfessionalismRating} {
		if sub != nil && !validRating(*sub) {
			return nil, ErrInvalidRating
		}
	}
	if strings.TrimSpace(r.Comment) == "" {
		return nil, ErrMissingComment
	}
	r.IsFeatured = false
	r.IsPublic = true
	return &r, nil
}

func validRating(n int) bool { return n >= 1 && n <= 5 }

// Response is the contractor's single public reply to a review.
type Response struct {
	ID           string    `db:"id"`
	ReviewID     string    `db:"review_id"`
	ContractorID string    `db:"contractor_id"`
	ResponseText string    `db:"response_text"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// NewResponse validates a reply.
func NewResponse(r Response) (*Response, error) {
	if strings.TrimSpace(r.ResponseText) == "" {
		return nil, errors.New("reviews: response text is required")
	}
	return &r, nil
}

// HelpfulVote marks a review as helpful or not, once per user.
type HelpfulVote struct {
	ReviewID  string `db:"review_id"`
	UserID    string `db:"user_id"`
	IsHelpful bool   `db:"is_helpful"`
}
