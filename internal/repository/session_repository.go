package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookline/api/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists sessions in a side table independent of
// users and bookings: sessions(sid, sess, expire). The payload column
// holds the serialized models.SessionData.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Create(ctx context.Context, session models.Session) error {
	const query = `
		INSERT INTO sessions (sid, sess, expire)
		VALUES ($1, $2, $3)
		ON CONFLICT (sid)
		DO UPDATE SET sess = EXCLUDED.sess, expire = EXCLUDED.expire
	`

	payload, err := json.Marshal(session.Data)
	if err != nil {
		return fmt.Errorf("marshal session payload: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, session.SID, payload, session.ExpiresAt)
	return err
}

// GetValid returns the session for sid unless it is missing or already
// expired. Expired rows are treated as absent even before the sweep
// removes them.
func (r *SessionRepository) GetValid(ctx context.Context, sid string) (models.Session, error) {
	const query = `
		SELECT sid, sess, expire
		FROM sessions
		WHERE sid = $1 AND expire > NOW()
	`

	var (
		session models.Session
		payload []byte
	)
	if err := r.pool.QueryRow(ctx, query, sid).Scan(&session.SID, &payload, &session.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, err
	}

	if err := json.Unmarshal(payload, &session.Data); err != nil {
		return models.Session{}, fmt.Errorf("unmarshal session payload: %w", err)
	}
	return session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sid string) error {
	const query = `DELETE FROM sessions WHERE sid = $1`

	_, err := r.pool.Exec(ctx, query, sid)
	return err
}

// DeleteExpired purges logically dead rows and reports how many went.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM sessions WHERE expire < NOW()`

	cmd, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
