package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotificationDefaults(t *testing.T) {
	n, err := NewNotification(Notification{UserID: "u1", Title: "Hi", Message: "there"})
	require.NoError(t, err)
	assert.Equal(t, KindSystem, n.Kind)
	assert.NotNil(t, n.ExtraData)

	_, err = NewNotification(Notification{Title: "Hi", Message: "there"})
	assert.ErrorIs(t, err, ErrMissingUser)

	_, err = NewNotification(Notification{UserID: "u1", Title: " "})
	assert.ErrorIs(t, err, ErrMissingTitle)
}

func TestPreferenceGating(t *testing.T) {
	p := DefaultPreferences("u1")

	assert.True(t, p.AllowsEmail(KindNewMessage))
	assert.True(t, p.AllowsInApp(KindNewReview))
	assert.True(t, p.AllowsEmail(KindSystem), "system notices always go through")

	p.EmailNewMessages = false
	p.InAppApplications = false

	assert.False(t, p.AllowsEmail(KindNewMessage))
	assert.False(t, p.AllowsInApp(KindNewApplication))
	assert.False(t, p.AllowsInApp(KindApplicationStatus), "both application kinds share one toggle")
	assert.True(t, p.AllowsInApp(KindNewMessage), "channels are independent")
}
