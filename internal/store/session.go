package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session is one presenter run over a slide directory.
type Session struct {
	ID          string     `json:"id"`
	SlidesDir   string     `json:"slides_dir"`
	TotalSlides int        `json:"total_slides"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	Events      int        `json:"events"`
}

// SessionRepository provides access to sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Start records a new session and returns it.
func (r *SessionRepository) Start(slidesDir string, totalSlides int) (*Session, error) {
	sess := &Session{
		ID:          uuid.NewString(),
		SlidesDir:   slidesDir,
		TotalSlides: totalSlides,
		StartedAt:   time.Now().UTC(),
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, slides_dir, total_slides, started_at) VALUES (?, ?, ?, ?)`,
		sess.ID, sess.SlidesDir, sess.TotalSlides, sess.StartedAt,
	)
	if err != nil {
		return nil, err
	}

	return sess, nil
}

// End stamps the session's end time.
func (r *SessionRepository) End(id string) error {
	result, err := r.db.Exec(
		`UPDATE sessions SET ended_at = ? WHERE id = ? AND ended_at IS NULL`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

const sessionColumns = `s.id, s.slides_dir, s.total_slides, s.started_at, s.ended_at,
	(SELECT COUNT(*) FROM events e WHERE e.session_id = s.id)`

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	row := r.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions s WHERE s.id = ?`, id)

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return sess, nil
}

// List retrieves the most recent sessions, newest first. A limit of zero
// or less returns every session.
func (r *SessionRepository) List(limit int) ([]*Session, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.Query(
		`SELECT `+sessionColumns+` FROM sessions s ORDER BY s.started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	sess := &Session{}
	var ended sql.NullTime

	if err := row.Scan(&sess.ID, &sess.SlidesDir, &sess.TotalSlides, &sess.StartedAt, &ended, &sess.Events); err != nil {
		return nil, err
	}

	if ended.Valid {
		t := ended.Time
		sess.EndedAt = &t
	}
	return sess, nil
}
