package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cbodonnell/digipet/pkg/messages"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at path and runs the embedded migrations.
// The caller is responsible for calling Close() on the repository.
func NewSQLiteRepository(ctx context.Context, path string) (Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// sqlite only supports a single writer
	db.SetMaxOpenConns(1)

	err = migrate(ctx, "sqlite", func(ctx context.Context, q string) error {
		_, err := db.ExecContext(ctx, q)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveEvents(ctx context.Context, events []*messages.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	q := `
	INSERT INTO events (` + eventColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	for _, event := range events {
		if _, err := tx.ExecContext(ctx, q, eventValues(event)...); err != nil {
			return fmt.Errorf("failed to insert event: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) ListEvents(ctx context.Context, limit int) ([]*messages.Event, error) {
	q := `
	SELECT ` + eventColumns + ` FROM events ORDER BY seq DESC LIMIT ?;
	`
	rows, err := r.db.QueryContext(ctx, q, NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %v", err)
	}
	defer rows.Close()

	events := make([]*messages.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %v", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %v", err)
	}

	return events, nil
}

func (r *SQLiteRepository) GetEvent(ctx context.Context, id uuid.UUID) (*messages.Event, error) {
	q := `
	SELECT ` + eventColumns + ` FROM events WHERE id = ?;
	`
	event, err := scanEvent(r.db.QueryRowContext(ctx, q, id.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan event: %v", err)
	}

	return event, nil
}
