package family

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"babysteps/internal/common"
	"babysteps/internal/dbx"
	"babysteps/internal/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Row mirrors a family_members row. The invite share code is stored only as
// a bcrypt hash; the clear code never touches the database.
type Row struct {
	Member   *models.FamilyMember
	CodeHash string
}

func (r *PostgresRepository) Insert(ctx context.Context, m *models.FamilyMember, codeHash string) error {
	perms, err := json.Marshal(m.Permissions)
	if err != nil {
		return fmt.Errorf("encoding permissions: %w", err)
	}

	query := `INSERT INTO family_members
	            (id, owner_user_id, email, name, role, permissions, status, code_hash, invited_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.db.ExecContext(ctx, query,
		m.ID, m.OwnerUserID, m.Email, m.Name, m.Role, perms, m.Status, codeHash, m.InvitedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Row, error) {
	query := `SELECT id, owner_user_id, email, name, role, permissions, status, code_hash, invited_at, accepted_at
	          FROM family_members WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]*models.FamilyMember, error) {
	query := `SELECT id, owner_user_id, email, name, role, permissions, status, code_hash, invited_at, accepted_at
	          FROM family_members WHERE owner_user_id = $1 ORDER BY invited_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	members := []*models.FamilyMember{}
	for rows.Next() {
		row, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, row.Member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return members, nil
}

func (r *PostgresRepository) Redeem(ctx context.Context, id string, verify func(row *Row) error) (*models.FamilyMember, error) {
	var member *models.FamilyMember

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := `SELECT id, owner_user_id, email, name, role, permissions, status, code_hash, invited_at, accepted_at
		          FROM family_members WHERE id = $1 FOR UPDATE`
		row, err := r.scanOne(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			return err
		}

		if err := verify(row); err != nil {
			return err
		}

		query = `UPDATE family_members SET status = $2, accepted_at = now() WHERE id = $1`
		if _, err := tx.ExecContext(ctx, query, id, models.InviteAccepted); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		row.Member.Status = models.InviteAccepted
		member = row.Member
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.InviteStatus) error {
	query := `UPDATE family_members
	          SET status = $2,
	              accepted_at = CASE WHEN $2 = 'accepted' THEN now() ELSE accepted_at END
	          WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *PostgresRepository) scanOne(s scanner) (*Row, error) {
	m := &models.FamilyMember{}
	var perms []byte
	var codeHash string
	var acceptedAt sql.NullTime

	err := s.Scan(&m.ID, &m.OwnerUserID, &m.Email, &m.Name, &m.Role,
		&perms, &m.Status, &codeHash, &m.InvitedAt, &acceptedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(perms, &m.Permissions); err != nil {
		return nil, fmt.Errorf("decoding permissions: %w", err)
	}
	if acceptedAt.Valid {
		t := acceptedAt.Time
		m.AcceptedAt = &t
	}
	return &Row{Member: m, CodeHash: codeHash}, nil
}
