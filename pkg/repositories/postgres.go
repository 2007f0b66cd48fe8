package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/cbodonnell/digipet/pkg/log"
	"github.com/cbodonnell/digipet/pkg/messages"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to the database at connStr and runs the embedded migrations.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = pool.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to query database: %v", err)
	}
	log.Info("Connected to %s as %s", database, username)

	err = migrate(ctx, "postgres", func(ctx context.Context, q string) error {
		_, err := pool.Exec(ctx, q)
		return err
	})
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresRepository{
		pool: pool,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) SaveEvents(ctx context.Context, events []*messages.Event) error {
	if len(events) == 0 {
		return nil
	}

	q := `
	INSERT INTO events (` + eventColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, event := range events {
		batch.Queue(q, eventValues(event)...)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert events: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *PostgresRepository) ListEvents(ctx context.Context, limit int) ([]*messages.Event, error) {
	q := `
	SELECT ` + eventColumns + ` FROM events ORDER BY seq DESC LIMIT $1;
	`
	rows, err := r.pool.Query(ctx, q, NormalizeLimit(limit))
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

func (r *PostgresRepository) GetEvent(ctx context.Context, id uuid.UUID) (*messages.Event, error) {
	q := `
	SELECT ` + eventColumns + ` FROM events WHERE id = $1;
	`
	event, err := scanEvent(r.pool.QueryRow(ctx, q, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan event: %v", err)
	}

	return event, nil
}
