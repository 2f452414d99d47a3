package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testSession() *Session {
	return &Session{
		Room: Room{ID: "room-1", RoomType: RoomDirect, IsActive: true},
		Members: map[string]Member{
			"alice": {RoomID: "room-1", UserID: "alice", Role: RoleAdmin},
			"bob":   {RoomID: "room-1", UserID: "bob", Role: RoleMember},
		},
	}
}

func TestNewRoomDirectClearsName(t *testing.T) {
	room, err := NewRoom(Room{RoomType: RoomDirect, Name: "should go away"})
	require.NoError(t, err)
	assert.Empty(t, room.Name)
	assert.True(t, room.IsActive)
}

func TestNewRoomProjectRequiresProject(t *testing.T) {
	_, err := NewRoom(Room{RoomType: RoomProject})
	assert.Error(t, err)

	pid := "project-1"
	room, err := NewRoom(Room{RoomType: RoomProject, ProjectID: &pid})
	require.NoError(t, err)
	assert.Equal(t, RoomProject, room.RoomType)
}

func TestNewRoomGroupRequiresName(t *testing.T) {
	_, err := NewRoom(Room{RoomType: RoomGroup})
	assert.Error(t, err)
}

func TestNewRoomRejectsUnknownType(t *testing.T) {
	_, err := NewRoom(Room{RoomType: "broadcast"})
	assert.ErrorIs(t, err, ErrInvalidRoomType)
}

func TestPostMessageHappyPath(t *testing.T) {
	s := testSession()
	now := time.Now().UTC()

	msg, err := s.PostMessage(Message{RoomID: "room-1", SenderID: "alice", Body: strPtr("hi")}, now)
	require.NoError(t, err)
	assert.Equal(t, now, msg.CreatedAt)
	require.NotNil(t, s.LastMessageAt)
	assert.Equal(t, now, *s.LastMessageAt)
}

func TestPostMessageRejectsNonMember(t *testing.T) {
	s := testSession()
	_, err := s.PostMessage(Message{RoomID: "room-1", SenderID: "mallory", Body: strPtr("hi")}, time.Now())
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestPostMessageRejectsInactiveRoom(t *testing.T) {
	s := testSession()
	s.Room.IsActive = false
	_, err := s.PostMessage(Message{RoomID: "room-1", SenderID: "alice", Body: strPtr("hi")}, time.Now())
	assert.ErrorIs(t, err, ErrRoomInactive)
}

func TestPostMessageRejectsRoomMismatch(t *testing.T) {
	s := testSession()
	_, err := s.PostMessage(Message{RoomID: "room-2", SenderID: "alice", Body: strPtr("hi")}, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostMessageRejectsMutedMember(t *testing.T) {
	s := testSession()
	now := time.Now().UTC()
	until := now.Add(time.Hour)
	m := s.Members["bob"]
	m.MutedUntil = &until
	s.Members["bob"] = m

	_, err := s.PostMessage(Message{RoomID: "room-1", SenderID: "bob", Body: strPtr("hi")}, now)
	assert.ErrorIs(t, err, ErrMuted)
}

func TestPostMessageAllowsExpiredMute(t *testing.T) {
	s := testSession()
	now := time.Now().UTC()
	until := now.Add(-time.Minute)
	m := s.Members["bob"]
	m.MutedUntil = &until
	s.Members["bob"] = m

	_, err := s.PostMessage(Message{RoomID: "room-1", SenderID: "bob", Body: strPtr("hi")}, now)
	assert.NoError(t, err)
}

func TestPostMessageRejectsBackdated(t *testing.T) {
	s := testSession()
	now := time.Now().UTC()
	last := now.Add(time.Minute)
	s.LastMessageAt = &last

	_, err := s.PostMessage(Message{RoomID: "room-1", SenderID: "alice", Body: strPtr("hi"), CreatedAt: now}, now)
	assert.ErrorIs(t, err, ErrBackdatedMsg)
}

func TestPostMessageRejectsEmptyContent(t *testing.T) {
	s := testSession()
	_, err := s.PostMessage(Message{RoomID: "room-1", SenderID: "alice"}, time.Now())
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestPostMessageSystemWithoutBody(t *testing.T) {
	s := testSession()
	_, err := s.PostMessage(Message{RoomID: "room-1", SenderID: "alice", MsgType: MessageTypeSystem}, time.Now())
	assert.NoError(t, err)
}

func TestMessageTypeWireValues(t *testing.T) {
	assert.Equal(t, MessageType(0), MessageTypeText)
	assert.Equal(t, MessageType(1), MessageTypeImage)
	assert.Equal(t, MessageType(2), MessageTypeFile)
	assert.Equal(t, MessageType(3), MessageTypeSystem)
}

func TestPostMessageFileRequiresAttachment(t *testing.T) {
	s := testSession()
	_, err := s.PostMessage(Message{RoomID: "room-1", SenderID: "bob", MsgType: MessageTypeFile}, time.Now())
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = s.PostMessage(Message{
		RoomID:        "room-1",
		SenderID:      "bob",
		MsgType:       MessageTypeFile,
		AttachmentURL: strPtr("https://cdn.example.com/contract.pdf"),
	}, time.Now())
	assert.NoError(t, err)
}

func TestPostMessageAttachmentOnly(t *testing.T) {
	s := testSession()
	_, err := s.PostMessage(Message{RoomID: "room-1", SenderID: "bob", AttachmentURL: strPtr("https://cdn.example.com/f.png")}, time.Now())
	assert.NoError(t, err)
}

func TestHasMember(t *testing.T) {
	s := testSession()
	assert.True(t, s.HasMember("alice"))
	assert.False(t, s.HasMember("mallory"))

	var nilSession *Session
	assert.False(t, nilSession.HasMember("alice"))
}
