package chat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("chat not found")

type Repository interface {
	CreateChat(ctx context.Context, participantIDs []string) (*Chat, error)
	GetChat(ctx context.Context, id string) (*Chat, error)
	ListChatsByUser(ctx context.Context, userID string) ([]Chat, error)
	AddMessage(ctx context.Context, m *Message) error
	ListMessages(ctx context.Context, chatID string) ([]Message, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) CreateChat(ctx context.Context, participantIDs []string) (*Chat, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c := &Chat{ID: uuid.NewString(), Participants: participantIDs, CreatedAt: time.Now()}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `INSERT INTO chats (id, created_at) VALUES ($1,NOW())`, c.ID); err != nil {
		return nil, err
	}
	for _, uid := range participantIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO chat_participants (chat_id, user_id) VALUES ($1,$2)
		`, c.ID, uid); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PGRepo) GetChat(ctx context.Context, id string) (*Chat, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Chat
	if err := r.db.QueryRow(ctx, `SELECT id, created_at FROM chats WHERE id=$1`, id).
		Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, ErrNotFound
	}

	rows, err := r.db.Query(ctx, `SELECT user_id FROM chat_participants WHERE chat_id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, err
		}
		c.Participants = append(c.Participants, uid)
	}
	return &c, rows.Err()
}

func (r *PGRepo) ListChatsByUser(ctx context.Context, userID string) ([]Chat, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.created_at
		FROM chats c
		JOIN chat_participants p ON p.chat_id = c.id
		WHERE p.user_id=$1
		ORDER BY c.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Chat
	for rows.Next() {
		var c Chat
		if err := rows.Scan(&c.ID, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) AddMessage(ctx context.Context, m *Message) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO messages (id, chat_id, author_id, text, image, video, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW())
	`, m.ID, m.ChatID, m.AuthorID, m.Text, m.Image, m.Video)
	return err
}

func (r *PGRepo) ListMessages(ctx context.Context, chatID string) ([]Message, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, chat_id, author_id, text, image, video, created_at
		FROM messages WHERE chat_id=$1 ORDER BY created_at
	`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ChatID, &m.AuthorID, &m.Text, &m.Image, &m.Video, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
