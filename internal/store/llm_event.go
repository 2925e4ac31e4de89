package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// eventRepo implements EventRepo with raw SQL.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_events
		 (timestamp, provider, model, purpose, input_tokens, output_tokens,
		  latency_ms, success, error_message, request_body, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	query := `SELECT id, timestamp, provider, model, purpose, input_tokens,
	          output_tokens, latency_ms, success, error_message
	          FROM llm_events`
	var args []any
	if opts.Purpose != "" {
		query += ` WHERE purpose = ?`
		args = append(args, opts.Purpose)
	}
	query += ` ORDER BY id DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		var e LLMEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	var e LLMEvent
	err := r.db.QueryRowContext(ctx,
		`SELECT id, timestamp, provider, model, purpose, input_tokens,
		 output_tokens, latency_ms, success, error_message, request_body, response_body
		 FROM llm_events WHERE id = ?`, id,
	).Scan(&e.ID, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success,
		&e.ErrorMessage, &e.RequestBody, &e.ResponseBody)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event: %w", err)
	}
	return &e, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT purpose, COUNT(*), COALESCE(SUM(input_tokens), 0),
		 COALESCE(SUM(output_tokens), 0), COALESCE(CAST(AVG(latency_ms) AS INTEGER), 0)
		 FROM llm_events GROUP BY purpose ORDER BY purpose`)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var stats []LLMUsage
	for rows.Next() {
		var u LLMUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		stats = append(stats, u)
	}
	return stats, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT model, COUNT(*), COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0)
		 FROM llm_events GROUP BY model ORDER BY model`)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var stats []LLMModelUsage
	for rows.Next() {
		var u LLMModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan model usage: %w", err)
		}
		stats = append(stats, u)
	}
	return stats, rows.Err()
}
