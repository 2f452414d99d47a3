package chat

import (
	"errors"
	"time"
)

// Room kinds. Direct rooms pair a client with a contractor; project rooms are
// tied to a posting and seeded with both parties; group rooms are free-form.
const (
	RoomDirect  = "direct"
	RoomProject = "project"
	RoomGroup   = "group"
)

// Member roles within a room.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
	RoleOwner  = "owner"
)

var (
	ErrNotFound        = errors.New("chat: not found")
	ErrInvalidRoomType = errors.New("chat: invalid room type")
	ErrNotMember       = errors.New("chat: user is not a member of this room")
	ErrRoomInactive    = errors.New("chat: room is no longer active")
	ErrMuted           = errors.New("chat: member is muted in this room")
	ErrBackdatedMsg    = errors.New("chat: message timestamp is backdated")
	ErrEmptyMessage    = errors.New("chat: empty message (no body or attachment)")
)

// Room is a conversation thread.
type Room struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	RoomType  string    `db:"room_type"`
	ProjectID *string   `db:"project_id"`
	IsActive  bool      `db:"is_active"`
	CreatedBy *string   `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	// Denormalized for listings.
	LastMessage *Message `db:"-"`
	UnreadCount int      `db:"-"`
}

// NewRoom validates a room. Direct rooms carry no name; project rooms must
// reference their project.
func NewRoom(r Room) (*Room, error) {
	switch r.RoomType {
	case RoomDirect:
		r.Name = ""
	case RoomProject:
		if r.ProjectID == nil {
			return nil, errors.New("chat: project room needs a project")
		}
	case RoomGroup:
		if r.Name == "" {
			return nil, errors.New("chat: group room needs a name")
		}
	default:
		return nil, ErrInvalidRoomType
	}
	r.IsActive = true
	return &r, nil
}

// Member captures room membership and read/mute state.
// Primary key: (RoomID, UserID).
type Member struct {
	RoomID      string     `db:"room_id"`
	UserID      string     `db:"user_id"`
	Role        string     `db:"role"`
	LastReadMsg *string    `db:"last_read_msg"`
	MutedUntil  *time.Time `db:"muted_until"`
	JoinedAt    time.Time  `db:"joined_at"`
}

// MessageType distinguishes message payloads on the wire and in storage.
type MessageType int16

const (
	MessageTypeText   MessageType = 0
	MessageTypeImage  MessageType = 1
	MessageTypeFile   MessageType = 2
	MessageTypeSystem MessageType = 3
)

// Message is one chat entry.
type Message struct {
	ID             string      `db:"id"`
	RoomID         string      `db:"room_id"`
	SenderID       string      `db:"sender_id"`
	MsgType        MessageType `db:"msg_type"`
	Body           *string     `db:"body"`
	AttachmentURL  *string     `db:"attachment_url"`
	AttachmentMeta *string     `db:"attachment_meta"`
	ReplyTo        *string     `db:"reply_to"`
	DedupeKey      *string     `db:"dedupe_key"`
	CreatedAt      time.Time   `db:"created_at"`
}

// Session is the hydrated aggregate for one room: the room row, its members
// and the latest message timestamp. The application layer hydrates it before
// invoking behaviors; persistence stays outside the domain.
type Session struct {
	Room          Room
	Members       map[string]Member // keyed by userID
	LastMessageAt *time.Time
}

// HasMember tells whether userID belongs to this room.
func (s *Session) HasMember(userID string) bool {
	if s == nil || s.Members == nil {
		return false
	}
	_, ok := s.Members[userID]
	return ok
}

// PostMessage applies room rules and returns a validated message ready to
// persist.
//
// Validations:
// - Room/message identity must match and the room must be active
// - Sender must be a member and must not be muted
// - Message must not be backdated relative to LastMessageAt (if known)
// - Non-system messages must include either body or attachment
//
// On success the session's LastMessageAt watermark advances to m.CreatedAt
// (set to now when zero).
func (s *Session) PostMessage(m Message, now time.Time) (Message, error) {
	if m.RoomID == "" || s.Room.ID == "" || m.RoomID != s.Room.ID {
		return Message{}, ErrNotFound
	}
	if !s.Room.IsActive {
		return Message{}, ErrRoomInactive
	}

	member, ok := s.Members[m.SenderID]
	if !ok {
		return Message{}, ErrNotMember
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	if member.MutedUntil != nil && member.MutedUntil.After(now) {
		return Message{}, ErrMuted
	}

	ts := m.CreatedAt
	if ts.IsZero() {
		ts = now.UTC()
	}
	if s.LastMessageAt != nil && ts.Before(s.LastMessageAt.UTC()) {
		return Message{}, ErrBackdatedMsg
	}

	if m.MsgType != MessageTypeSystem && m.Body == nil && m.AttachmentURL == nil {
		return Message{}, ErrEmptyMessage
	}

	m.CreatedAt = ts
	s.LastMessageAt = &ts
	return m, nil
}
