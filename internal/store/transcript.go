package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// transcriptRepo implements TranscriptRepo with raw SQL.
type transcriptRepo struct {
	db *sql.DB
}

func (r *transcriptRepo) CreateSession(ctx context.Context, rec SessionRecord) error {
	startedAt := rec.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, level, language, started_at) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.Level, rec.Language, startedAt)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *transcriptRepo) AppendMessage(ctx context.Context, rec MessageRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_messages (session_id, sender, content, created_at) VALUES (?, ?, ?, ?)`,
		rec.SessionID, rec.Sender, rec.Content, createdAt)
	if err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

func (r *transcriptRepo) SaveWorksheet(ctx context.Context, rec WorksheetRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO worksheets (session_id, topics, data, created_at) VALUES (?, ?, ?, ?)`,
		rec.SessionID, rec.Topics, rec.Data, createdAt)
	if err != nil {
		return fmt.Errorf("save worksheet: %w", err)
	}
	return nil
}

func (r *transcriptRepo) ListSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	query := `SELECT id, level, language, started_at FROM sessions ORDER BY started_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionRecord
	for rows.Next() {
		var s SessionRecord
		if err := rows.Scan(&s.ID, &s.Level, &s.Language, &s.StartedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *transcriptRepo) GetSession(ctx context.Context, id string) (*SessionRecord, error) {
	var s SessionRecord
	err := r.db.QueryRowContext(ctx,
		`SELECT id, level, language, started_at FROM sessions WHERE id = ?`, id,
	).Scan(&s.ID, &s.Level, &s.Language, &s.StartedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

func (r *transcriptRepo) GetMessages(ctx context.Context, sessionID string) ([]MessageRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, sender, content, created_at
		 FROM session_messages WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}
	defer rows.Close()

	var messages []MessageRecord
	for rows.Next() {
		var m MessageRecord
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Sender, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *transcriptRepo) GetWorksheets(ctx context.Context, sessionID string) ([]WorksheetRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, topics, data, created_at
		 FROM worksheets WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get worksheets: %w", err)
	}
	defer rows.Close()

	var worksheets []WorksheetRecord
	for rows.Next() {
		var w WorksheetRecord
		if err := rows.Scan(&w.ID, &w.SessionID, &w.Topics, &w.Data, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan worksheet: %w", err)
		}
		worksheets = append(worksheets, w)
	}
	return worksheets, rows.Err()
}
