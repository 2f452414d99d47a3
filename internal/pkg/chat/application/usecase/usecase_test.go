package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qport "github.com/mahmut0ff/HandshakeMeBackend/internal/infrastructure/queue/port"
	chat "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/application/domain"
	moderationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/moderation/application/task"
	notificationtask "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/notifications/application/task"
)

// fakeChatRepo is an in-memory ChatRepository for use case tests.
type fakeChatRepo struct {
	mu       sync.Mutex
	session  *chat.Session
	messages []chat.Message
	seq      int
}

func (f *fakeChatRepo) CreateRoom(context.Context, chat.Room, []chat.Member) (string, error) {
	return "room-1", nil
}

func (f *fakeChatRepo) GetRoom(_ context.Context, roomID string) (*chat.Room, error) {
	if f.session != nil && f.session.Room.ID == roomID {
		cp := f.session.Room
		return &cp, nil
	}
	return nil, chat.ErrNotFound
}

func (f *fakeChatRepo) FindDirectRoom(context.Context, string, string) (string, error) {
	return "", chat.ErrNotFound
}

func (f *fakeChatRepo) ListRooms(context.Context, string) ([]chat.Room, error) { return nil, nil }

func (f *fakeChatRepo) GetSession(_ context.Context, roomID string) (*chat.Session, error) {
	if f.session == nil || f.session.Room.ID != roomID {
		return nil, chat.ErrNotFound
	}
	return f.session, nil
}

func (f *fakeChatRepo) IsMember(_ context.Context, _, userID string) (bool, error) {
	return f.session.HasMember(userID), nil
}

func (f *fakeChatRepo) ListMemberIDs(context.Context, string) ([]string, error) {
	ids := make([]string, 0, len(f.session.Members))
	for id := range f.session.Members {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeChatRepo) AddMember(context.Context, chat.Member) error { return nil }

func (f *fakeChatRepo) SaveMessage(_ context.Context, m chat.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	m.ID = "msg-" + string(rune('0'+f.seq))
	f.messages = append(f.messages, m)
	return m.ID, nil
}

func (f *fakeChatRepo) ListMessages(context.Context, string, int, int) ([]chat.Message, error) {
	return f.messages, nil
}

func (f *fakeChatRepo) UpdateReadState(context.Context, string, string, *string) error { return nil }
func (f *fakeChatRepo) SetMuteUntil(context.Context, string, string, *time.Time) error { return nil }

// fakeQueue records every enqueued task.
type fakeQueue struct {
	mu    sync.Mutex
	tasks []qport.Task
}

func (f *fakeQueue) Enqueue(_ context.Context, t qport.Task, _ ...qport.EnqueueOption) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, t)
	return "task-1", nil
}

func (f *fakeQueue) Close() error { return nil }

func (f *fakeQueue) byType(taskType string) []qport.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []qport.Task
	for _, t := range f.tasks {
		if t.Type == taskType {
			out = append(out, t)
		}
	}
	return out
}

func chatTestSession() *chat.Session {
	return &chat.Session{
		Room: chat.Room{ID: "room-1", RoomType: chat.RoomGroup, Name: "crew", IsActive: true},
		Members: map[string]chat.Member{
			"alice": {RoomID: "room-1", UserID: "alice", Role: chat.RoleOwner},
			"bob":   {RoomID: "room-1", UserID: "bob", Role: chat.RoleMember},
			"carol": {RoomID: "room-1", UserID: "carol", Role: chat.RoleMember},
		},
	}
}

func strPtr(s string) *string { return &s }

func TestSendMessageSkipsOnlineMembers(t *testing.T) {
	repo := &fakeChatRepo{session: chatTestSession()}
	q := &fakeQueue{}
	uc := NewSendMessageUseCase(repo, q)
	uc.IsOnline = func(userID string) bool { return userID == "bob" }

	msg, err := uc.Execute(context.Background(), SendMessageInput{
		RoomID:   "room-1",
		SenderID: "alice",
		Body:     strPtr("anyone around?"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, msg.ID)

	// Bob has a live socket and alice is the sender; only carol gets an
	// inbox notification.
	delivers := q.byType(notificationtask.DeliverNotificationTaskType)
	require.Len(t, delivers, 1)
	var p notificationtask.DeliverNotificationTaskPayload
	require.NoError(t, json.Unmarshal(delivers[0].Payload, &p))
	assert.Equal(t, "carol", p.UserID)
	assert.Equal(t, "message", p.RelatedKind)
	require.NotNil(t, p.RelatedID)
	assert.Equal(t, msg.ID, *p.RelatedID)
}

func TestSendMessageNilIsOnlineNotifiesEveryoneElse(t *testing.T) {
	repo := &fakeChatRepo{session: chatTestSession()}
	q := &fakeQueue{}
	uc := NewSendMessageUseCase(repo, q)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		RoomID:   "room-1",
		SenderID: "alice",
		Body:     strPtr("hello"),
	})
	require.NoError(t, err)

	delivers := q.byType(notificationtask.DeliverNotificationTaskType)
	recipients := map[string]bool{}
	for _, task := range delivers {
		var p notificationtask.DeliverNotificationTaskPayload
		require.NoError(t, json.Unmarshal(task.Payload, &p))
		recipients[p.UserID] = true
	}
	assert.Equal(t, map[string]bool{"bob": true, "carol": true}, recipients)
}

func TestSendMessageEnqueuesModerationScan(t *testing.T) {
	repo := &fakeChatRepo{session: chatTestSession()}
	q := &fakeQueue{}
	uc := NewSendMessageUseCase(repo, q)

	msg, err := uc.Execute(context.Background(), SendMessageInput{
		RoomID:   "room-1",
		SenderID: "bob",
		Body:     strPtr("cheap pills, click here"),
	})
	require.NoError(t, err)

	scans := q.byType(moderationtask.ScanContentTaskType)
	require.Len(t, scans, 1)
	var p moderationtask.ScanContentTaskPayload
	require.NoError(t, json.Unmarshal(scans[0].Payload, &p))
	assert.Equal(t, "message", p.ContentKind)
	assert.Equal(t, msg.ID, p.ContentID)
}

func TestSendMessageRejectsNonMember(t *testing.T) {
	repo := &fakeChatRepo{session: chatTestSession()}
	q := &fakeQueue{}
	uc := NewSendMessageUseCase(repo, q)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		RoomID:   "room-1",
		SenderID: "mallory",
		Body:     strPtr("let me in"),
	})
	assert.ErrorIs(t, err, chat.ErrNotMember)
	assert.Empty(t, q.tasks)
}
