package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"cadastro/internal/models"
)

var (
	// ErrUniqueViolation is returned when a write hits the unique email constraint.
	ErrUniqueViolation = errors.New("unique constraint violation")
	ErrNotFound        = errors.New("not found")
)

const pqUniqueViolation = "23505"

type ClientRepository struct {
	db *sqlx.DB
}

func NewClientRepository(db *sqlx.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	const q = `
                INSERT INTO clients (id, name, email, phone, address)
                VALUES ($1, $2, $3, $4, $5)
                RETURNING created_at, updated_at
        `
	err := r.db.QueryRowxContext(ctx, q, client.ID, client.Name, client.Email, client.Phone, client.Address).
		Scan(&client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create client: %w", translate(err))
	}
	return nil
}

func (r *ClientRepository) Update(ctx context.Context, client *models.Client) error {
	const q = `
                UPDATE clients
                SET name=$1, email=$2, phone=$3, address=$4, updated_at=NOW()
                WHERE id=$5
                RETURNING created_at, updated_at
        `
	err := r.db.QueryRowxContext(ctx, q, client.Name, client.Email, client.Phone, client.Address, client.ID).
		Scan(&client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update client: %w", ErrNotFound)
		}
		return fmt.Errorf("update client: %w", translate(err))
	}
	return nil
}

// GetByID returns nil, nil when no client has the id.
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	const q = `
                SELECT id, name, email, phone, address, created_at, updated_at
                FROM clients
                WHERE id=$1
        `
	var c models.Client
	if err := r.db.GetContext(ctx, &c, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// GetByEmail returns nil, nil when no client has the email.
func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	const q = `
                SELECT id, name, email, phone, address, created_at, updated_at
                FROM clients
                WHERE email=$1
        `
	var c models.Client
	if err := r.db.GetContext(ctx, &c, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by email: %w", err)
	}
	return &c, nil
}

// List returns every client, newest first.
func (r *ClientRepository) List(ctx context.Context) ([]models.Client, error) {
	const q = `
                SELECT id, name, email, phone, address, created_at, updated_at
                FROM clients
                ORDER BY created_at DESC, id DESC
        `
	res := []models.Client{}
	if err := r.db.SelectContext(ctx, &res, q); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return res, nil
}

// Delete removes the client and reports whether a row was deleted.
func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return false, fmt.Errorf("delete client: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete client: %w", err)
	}
	return n > 0, nil
}

func translate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return ErrUniqueViolation
	}
	return err
}
