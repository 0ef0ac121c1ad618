package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripweaver/internal/domain"
)

// pgUniqueViolation is the SQLSTATE Postgres reports for a unique index clash.
const pgUniqueViolation = "23505"

// CollaboratorRepo defines the persistence operations for trip sharing.
// Emails are matched case-insensitively.
type CollaboratorRepo interface {
	// List returns a trip's collaborators, owners first, then by invite time.
	List(ctx context.Context, tripID uuid.UUID) ([]domain.Collaborator, error)

	// Add inserts a collaborator. Returns domain.ErrValidation if the email
	// already has access to the trip.
	Add(ctx context.Context, c domain.Collaborator) (domain.Collaborator, error)

	// UpdateRole changes a collaborator's role.
	// Returns domain.ErrNotFound if the email has no access to the trip.
	UpdateRole(ctx context.Context, tripID uuid.UUID, email string, role domain.Role) (domain.Collaborator, error)

	// Remove revokes access. Returns domain.ErrNotFound if the email has no access.
	Remove(ctx context.Context, tripID uuid.UUID, email string) error
}

type pgCollaboratorRepo struct {
	db db
}

// NewCollaboratorRepo constructs a CollaboratorRepo backed by the provided db connection.
func NewCollaboratorRepo(db db) CollaboratorRepo {
	return &pgCollaboratorRepo{db: db}
}

func (r *pgCollaboratorRepo) List(ctx context.Context, tripID uuid.UUID) ([]domain.Collaborator, error) {
	const q = `
		SELECT trip_id, email, role, created_at
		FROM trip_collaborators
		WHERE trip_id = @trip_id
		ORDER BY (role = 'owner') DESC, created_at, email`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.CollaboratorRepo.List: %w", err)
	}
	defer rows.Close()

	out := []domain.Collaborator{}
	for rows.Next() {
		c, err := scanCollaborator(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CollaboratorRepo.List: scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CollaboratorRepo.List: rows: %w", err)
	}
	return out, nil
}

func (r *pgCollaboratorRepo) Add(ctx context.Context, c domain.Collaborator) (domain.Collaborator, error) {
	const q = `
		INSERT INTO trip_collaborators (trip_id, email, role)
		VALUES (@trip_id, @email, @role)
		RETURNING trip_id, email, role, created_at`

	result, err := scanCollaborator(r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"trip_id": c.TripID,
		"email":   c.Email,
		"role":    string(c.Role),
	}))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.Collaborator{}, fmt.Errorf("repo.CollaboratorRepo.Add: %w: %s already has access", domain.ErrValidation, c.Email)
		}
		return domain.Collaborator{}, fmt.Errorf("repo.CollaboratorRepo.Add: %w", err)
	}
	return result, nil
}

func (r *pgCollaboratorRepo) UpdateRole(ctx context.Context, tripID uuid.UUID, email string, role domain.Role) (domain.Collaborator, error) {
	const q = `
		UPDATE trip_collaborators
		SET role = @role
		WHERE trip_id = @trip_id AND lower(email) = lower(@email)
		RETURNING trip_id, email, role, created_at`

	result, err := scanCollaborator(r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"trip_id": tripID,
		"email":   email,
		"role":    string(role),
	}))
	if err != nil {
		return domain.Collaborator{}, fmt.Errorf("repo.CollaboratorRepo.UpdateRole: %w", err)
	}
	return result, nil
}

func (r *pgCollaboratorRepo) Remove(ctx context.Context, tripID uuid.UUID, email string) error {
	const q = `DELETE FROM trip_collaborators WHERE trip_id = @trip_id AND lower(email) = lower(@email)`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "email": email})
	if err != nil {
		return fmt.Errorf("repo.CollaboratorRepo.Remove: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CollaboratorRepo.Remove: %w", domain.ErrNotFound)
	}
	return nil
}

func scanCollaborator(s scanner) (domain.Collaborator, error) {
	var (
		c    domain.Collaborator
		id   pgtype.UUID
		role string
	)
	if err := s.Scan(&id, &c.Email, &role, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Collaborator{}, domain.ErrNotFound
		}
		return domain.Collaborator{}, err
	}
	c.TripID = uuid.UUID(id.Bytes)
	c.Role = domain.Role(role)
	return c, nil
}
