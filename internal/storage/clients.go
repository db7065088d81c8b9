package storage

import (
	"context"
	"fmt"

	"github.com/claude/fitrecord/internal/models"
	"github.com/google/uuid"
)

const clientColumns = `id, name, email, phone, notes, gym_time, created_at, updated_at`

// ClientInput holds the writable fields of a client record.
type ClientInput struct {
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Notes   *string `json:"notes"`
	GymTime *string `json:"gym_time"`
}

// ListClients returns all clients ordered by name.
func (db *DB) ListClients(ctx context.Context) ([]models.Client, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying clients: %w", err)
	}
	defer rows.Close()

	var result []models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// GetClient retrieves a single client by ID.
func (db *DB) GetClient(ctx context.Context, id uuid.UUID) (models.Client, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	c, err := scanClient(row)
	if err != nil {
		return models.Client{}, notFound(err)
	}
	return c, nil
}

// CreateClient inserts a client and returns the stored row.
func (db *DB) CreateClient(ctx context.Context, in ClientInput) (models.Client, error) {
	row := db.Pool.QueryRow(ctx,
		`INSERT INTO clients (name, email, phone, notes, gym_time)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+clientColumns,
		in.Name, in.Email, in.Phone, in.Notes, in.GymTime)
	c, err := scanClient(row)
	if err != nil {
		return models.Client{}, fmt.Errorf("inserting client: %w", err)
	}
	return c, nil
}

// UpdateClient replaces a client's writable fields.
func (db *DB) UpdateClient(ctx context.Context, id uuid.UUID, in ClientInput) (models.Client, error) {
	row := db.Pool.QueryRow(ctx,
		`UPDATE clients
		 SET name = $2, email = $3, phone = $4, notes = $5, gym_time = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+clientColumns,
		id, in.Name, in.Email, in.Phone, in.Notes, in.GymTime)
	c, err := scanClient(row)
	if err != nil {
		return models.Client{}, notFound(err)
	}
	return c, nil
}

// DeleteClient removes a client. Cascades to session links, workout exercises
// and their sets.
func (db *DB) DeleteClient(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanClient(row interface{ Scan(dest ...any) error }) (models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Notes, &c.GymTime,
		&c.CreatedAt, &c.UpdatedAt)
	return c, err
}
