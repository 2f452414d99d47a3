package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/mahmut0ff/HandshakeMeBackend/internal/pkg/chat/application/domain"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

func (r *PgChatRepository) CreateRoom(ctx context.Context, room chat.Room, members []chat.Member) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO chat_rooms (name, room_type, project_id, created_by)
		VALUES ($1, $2, $3::uuid, $4::uuid)
		RETURNING id::text
	`, room.Name, room.RoomType, room.ProjectID, room.CreatedBy).Scan(&id)
	if err != nil {
		return "", err
	}

	for _, m := range members {
		if _, err := tx.Exec(ctx, `
			INSERT INTO chat_room_members (room_id, user_id, role)
			VALUES ($1::uuid, $2::uuid, $3)
			ON CONFLICT (room_id, user_id) DO NOTHING
		`, id, m.UserID, m.Role); err != nil {
			return "", err
		}
	}
	return id, tx.Commit(ctx)
}

func (r *PgChatRepository) GetRoom(ctx context.Context, roomID string) (*chat.Room, error) {
	var room chat.Room
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, name, room_type, project_id::text, is_active, created_by::text, created_at, updated_at
		FROM chat_rooms WHERE id = $1::uuid
	`, roomID).Scan(&room.ID, &room.Name, &room.RoomType, &room.ProjectID,
		&room.IsActive, &room.CreatedBy, &room.CreatedAt, &room.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *PgChatRepository) FindDirectRoom(ctx context.Context, userA, userB string) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		SELECT cr.id::text
		FROM chat_rooms cr
		JOIN chat_room_members a ON a.room_id = cr.id AND a.user_id = $1::uuid
		JOIN chat_room_members b ON b.room_id = cr.id AND b.user_id = $2::uuid
		WHERE cr.room_type = 'direct' AND cr.is_active
		LIMIT 1
	`, userA, userB).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", chat.ErrNotFound
	}
	return id, err
}

func (r *PgChatRepository) ListRooms(ctx context.Context, userID string) ([]chat.Room, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT cr.id::text, cr.name, cr.room_type, cr.project_id::text, cr.is_active,
		       cr.created_by::text, cr.created_at, cr.updated_at,
		       lm.id::text, lm.sender_id::text, lm.msg_type, lm.body, lm.created_at,
		       (SELECT count(*) FROM messages m
		        WHERE m.room_id = cr.id
		          AND (crm.last_read_msg IS NULL OR m.created_at > (
		              SELECT created_at FROM messages WHERE id = crm.last_read_msg))
		          AND m.sender_id <> crm.user_id)
		FROM chat_rooms cr
		JOIN chat_room_members crm ON crm.room_id = cr.id AND crm.user_id = $1::uuid
		LEFT JOIN LATERAL (
			SELECT id, sender_id, msg_type, body, created_at
			FROM messages WHERE room_id = cr.id
			ORDER BY created_at DESC LIMIT 1
		) lm ON true
		WHERE cr.is_active
		ORDER BY COALESCE(lm.created_at, cr.created_at) DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []chat.Room
	for rows.Next() {
		var room chat.Room
		var lmID, lmSender, lmBody *string
		var lmType *int16
		var lmCreated *time.Time
		if err := rows.Scan(&room.ID, &room.Name, &room.RoomType, &room.ProjectID, &room.IsActive,
			&room.CreatedBy, &room.CreatedAt, &room.UpdatedAt,
			&lmID, &lmSender, &lmType, &lmBody, &lmCreated, &room.UnreadCount); err != nil {
			return nil, err
		}
		if lmID != nil {
			room.LastMessage = &chat.Message{
				ID:        *lmID,
				RoomID:    room.ID,
				SenderID:  *lmSender,
				MsgType:   chat.MessageType(*lmType),
				Body:      lmBody,
				CreatedAt: *lmCreated,
			}
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

func (r *PgChatRepository) GetSession(ctx context.Context, roomID string) (*chat.Session, error) {
	room, err := r.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT room_id::text, user_id::text, role, last_read_msg::text, muted_until, joined_at
		FROM chat_room_members WHERE room_id = $1::uuid
	`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make(map[string]chat.Member)
	for rows.Next() {
		var m chat.Member
		if err := rows.Scan(&m.RoomID, &m.UserID, &m.Role, &m.LastReadMsg, &m.MutedUntil, &m.JoinedAt); err != nil {
			return nil, err
		}
		members[m.UserID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var last *time.Time
	err = r.pool.QueryRow(ctx,
		`SELECT max(created_at) FROM messages WHERE room_id = $1::uuid`, roomID).Scan(&last)
	if err != nil {
		return nil, err
	}

	return &chat.Session{Room: *room, Members: members, LastMessageAt: last}, nil
}

func (r *PgChatRepository) IsMember(ctx context.Context, roomID, userID string) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM chat_room_members WHERE room_id = $1::uuid AND user_id = $2::uuid
		)
	`, roomID, userID).Scan(&ok)
	return ok, err
}

func (r *PgChatRepository) ListMemberIDs(ctx context.Context, roomID string) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id::text FROM chat_room_members WHERE room_id = $1::uuid`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PgChatRepository) AddMember(ctx context.Context, m chat.Member) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chat_room_members (room_id, user_id, role, last_read_msg, muted_until)
		VALUES ($1::uuid, $2::uuid, $3, $4::uuid, $5)
		ON CONFLICT (room_id, user_id)
		DO UPDATE SET role = EXCLUDED.role,
		              muted_until = EXCLUDED.muted_until
	`, m.RoomID, m.UserID, m.Role, m.LastReadMsg, m.MutedUntil)
	return err
}

func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.Message) (string, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (room_id, sender_id, msg_type, body, attachment_url, attachment_meta, reply_to, dedupe_key, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4, $5, COALESCE($6::json, NULL), $7::uuid, $8, $9)
		RETURNING id::text
	`, m.RoomID, m.SenderID, m.MsgType, m.Body, m.AttachmentURL, m.AttachmentMeta,
		m.ReplyTo, m.DedupeKey, m.CreatedAt).Scan(&id)
	if isUniqueViolation(err) && m.DedupeKey != nil {
		// Idempotent resend: hand back the message stored the first time.
		lookupErr := r.pool.QueryRow(ctx,
			`SELECT id::text FROM messages WHERE room_id = $1::uuid AND dedupe_key = $2`,
			m.RoomID, *m.DedupeKey).Scan(&id)
		return id, lookupErr
	}
	return id, err
}

func (r *PgChatRepository) ListMessages(ctx context.Context, roomID string, limit, offset int) ([]chat.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, room_id::text, sender_id::text, msg_type, body, attachment_url,
		       attachment_meta, reply_to::text, dedupe_key, created_at
		FROM messages
		WHERE room_id = $1::uuid
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, roomID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.MsgType, &m.Body, &m.AttachmentURL,
			&m.AttachmentMeta, &m.ReplyTo, &m.DedupeKey, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *PgChatRepository) UpdateReadState(ctx context.Context, roomID, userID string, lastReadMsg *string) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat_room_members
		SET last_read_msg = $3::uuid
		WHERE room_id = $1::uuid AND user_id = $2::uuid
	`, roomID, userID, lastReadMsg)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return chat.ErrNotFound
	}
	return nil
}

func (r *PgChatRepository) SetMuteUntil(ctx context.Context, roomID, userID string, mutedUntil *time.Time) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE chat_room_members
		SET muted_until = $3
		WHERE room_id = $1::uuid AND user_id = $2::uuid
	`, roomID, userID, mutedUntil)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return chat.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
