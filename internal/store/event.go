package store

import (
	"database/sql"
	"time"
)

// Event is one executed single-trigger action.
type Event struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Frame     uint64    `json:"frame"`
	Action    string    `json:"action"`
	Slide     int       `json:"slide"`
	CreatedAt time.Time `json:"created_at"`
}

// EventRepository provides access to recorded actions.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Record inserts e and fills in its ID and creation time.
func (r *EventRepository) Record(e *Event) error {
	e.CreatedAt = time.Now().UTC()

	result, err := r.db.Exec(
		`INSERT INTO events (session_id, frame, action, slide, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.SessionID, int64(e.Frame), e.Action, e.Slide, e.CreatedAt,
	)
	if err != nil {
		return err
	}

	e.ID, err = result.LastInsertId()
	return err
}

// ListBySession retrieves a session's events in the order they happened.
func (r *EventRepository) ListBySession(sessionID string) ([]*Event, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, frame, action, slide, created_at
		 FROM events WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		var frame int64
		if err := rows.Scan(&e.ID, &e.SessionID, &frame, &e.Action, &e.Slide, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Frame = uint64(frame)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
