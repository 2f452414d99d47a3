package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notifications "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/domain"
)

// fakeNotificationRepo is an in-memory NotificationRepository for use case tests.
type fakeNotificationRepo struct {
	mu         sync.Mutex
	created    []notifications.Notification
	prefs      map[string]notifications.Preferences
	recipients map[string]notifications.Recipient
	seq        int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		prefs:      map[string]notifications.Preferences{},
		recipients: map[string]notifications.Recipient{},
	}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n notifications.Notification) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	n.ID = "notif-" + string(rune('0'+f.seq))
	f.created = append(f.created, n)
	return n.ID, nil
}

func (f *fakeNotificationRepo) List(context.Context, string, bool, int, int) ([]notifications.Notification, int, error) {
	return nil, 0, nil
}

func (f *fakeNotificationRepo) UnreadCount(context.Context, string) (int, error) { return 0, nil }
func (f *fakeNotificationRepo) MarkRead(context.Context, string, []string) (int64, error) {
	return 0, nil
}
func (f *fakeNotificationRepo) MarkAllRead(context.Context, string) (int64, error) { return 0, nil }
func (f *fakeNotificationRepo) DeleteReadBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationRepo) GetPreferences(_ context.Context, userID string) (*notifications.Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.prefs[userID]; ok {
		return &p, nil
	}
	p := notifications.DefaultPreferences(userID)
	return &p, nil
}

func (f *fakeNotificationRepo) UpsertPreferences(_ context.Context, p notifications.Preferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefs[p.UserID] = p
	return nil
}

func (f *fakeNotificationRepo) GetRecipient(_ context.Context, userID string) (*notifications.Recipient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.recipients[userID]; ok {
		return &r, nil
	}
	return nil, notifications.ErrNotFound
}

func (f *fakeNotificationRepo) ListUsersWithUnread(context.Context, int) ([]string, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) ListUnread(context.Context, string, int) ([]notifications.Notification, error) {
	return nil, nil
}

// fakeMailer records outbound mail.
type fakeMailer struct {
	mu   sync.Mutex
	sent []string // recipient addresses
}

func (f *fakeMailer) Send(to, _, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

func deliverFixture() (*fakeNotificationRepo, *fakeMailer, *DeliverNotificationUseCase) {
	repo := newFakeNotificationRepo()
	repo.recipients["user-1"] = notifications.Recipient{UserID: "user-1", Email: "user1@example.com", Name: "Pat"}
	mail := &fakeMailer{}
	return repo, mail, NewDeliverNotificationUseCase(repo, mail, "HandshakeMe", "https://handshake.example.com")
}

func TestDeliverDefaultPreferencesHitBothChannels(t *testing.T) {
	repo, mail, uc := deliverFixture()

	err := uc.Execute(context.Background(), notifications.Notification{
		UserID: "user-1", Kind: notifications.KindNewMessage,
		Title: "New message", Message: "You have a new chat message.",
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, notifications.KindNewMessage, repo.created[0].Kind)
	assert.Equal(t, []string{"user1@example.com"}, mail.sent)
}

func TestDeliverEmailGatedByPreference(t *testing.T) {
	repo, mail, uc := deliverFixture()
	prefs := notifications.DefaultPreferences("user-1")
	prefs.EmailReviews = false
	repo.prefs["user-1"] = prefs

	err := uc.Execute(context.Background(), notifications.Notification{
		UserID: "user-1", Kind: notifications.KindNewReview,
		Title: "New review", Message: "You received a 5-star review.",
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1, "in-app channel stays on")
	assert.Empty(t, mail.sent, "email channel is opted out")
}

func TestDeliverInAppGatedByPreference(t *testing.T) {
	repo, mail, uc := deliverFixture()
	prefs := notifications.DefaultPreferences("user-1")
	prefs.InAppNewMessages = false
	prefs.EmailNewMessages = false
	repo.prefs["user-1"] = prefs

	err := uc.Execute(context.Background(), notifications.Notification{
		UserID: "user-1", Kind: notifications.KindNewMessage,
		Title: "New message", Message: "You have a new chat message.",
	})
	require.NoError(t, err)

	assert.Empty(t, repo.created)
	assert.Empty(t, mail.sent)
}

func TestDeliverSystemKindIgnoresOptOuts(t *testing.T) {
	repo, mail, uc := deliverFixture()
	prefs := notifications.DefaultPreferences("user-1")
	prefs.InAppNewMessages = false
	prefs.EmailNewMessages = false
	repo.prefs["user-1"] = prefs

	err := uc.Execute(context.Background(), notifications.Notification{
		UserID: "user-1", Kind: notifications.KindSystem,
		Title: "Maintenance", Message: "Scheduled downtime tonight.",
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, []string{"user1@example.com"}, mail.sent)
}

func TestDeliverMissingRecipientSkipsEmail(t *testing.T) {
	repo, mail, uc := deliverFixture()
	delete(repo.recipients, "user-1")

	err := uc.Execute(context.Background(), notifications.Notification{
		UserID: "user-1", Kind: notifications.KindNewMessage,
		Title: "New message", Message: "You have a new chat message.",
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Empty(t, mail.sent)
}

func TestDeliverValidatesInput(t *testing.T) {
	_, _, uc := deliverFixture()

	err := uc.Execute(context.Background(), notifications.Notification{
		Kind: notifications.KindSystem, Title: "x", Message: "y",
	})
	assert.ErrorIs(t, err, notifications.ErrMissingUser)

	err = uc.Execute(context.Background(), notifications.Notification{
		UserID: "user-1", Kind: notifications.KindSystem, Title: "  ", Message: "y",
	})
	assert.ErrorIs(t, err, notifications.ErrMissingTitle)
}
