package family

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"babysteps/internal/common"
	"babysteps/internal/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func memberColumns() []string {
	return []string{"id", "owner_user_id", "email", "name", "role", "permissions", "status", "code_hash", "invited_at", "accepted_at"}
}

func TestInsert_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	m := &models.FamilyMember{
		ID:          "fm1",
		OwnerUserID: "u1",
		Email:       "aunt@example.com",
		Role:        "caregiver",
		Status:      models.InvitePending,
		InvitedAt:   time.Now(),
	}

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+family_members`).
		WithArgs(m.ID, m.OwnerUserID, m.Email, m.Name, m.Role, sqlmock.AnyArg(), m.Status, "hash", m.InvitedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Insert(context.Background(), m, "hash"); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_DecodesPermissionsAndAcceptedAt(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	accepted := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(memberColumns()).
		AddRow("fm1", "u1", "aunt@example.com", "Aunt", "caregiver",
			[]byte(`{"view":true,"edit":true}`), "accepted", "hash", time.Now(), accepted)

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*owner_user_id.*FROM\s+family_members\s+WHERE\s+id`).
		WithArgs("fm1").WillReturnRows(rows)

	row, err := repo.GetByID(context.Background(), "fm1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if !row.Member.Permissions.View || !row.Member.Permissions.Edit {
		t.Errorf("expected permissions to survive the round trip: %+v", row.Member.Permissions)
	}
	if row.CodeHash != "hash" {
		t.Errorf("unexpected code hash %q", row.CodeHash)
	}
	if row.Member.AcceptedAt == nil || !row.Member.AcceptedAt.Equal(accepted) {
		t.Errorf("unexpected accepted_at %v", row.Member.AcceptedAt)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*owner_user_id.*FROM\s+family_members\s+WHERE\s+id`).
		WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Errorf("expected ErrorNotFound, got %v", err)
	}
}

func TestRedeem_CommitsAcceptedStatus(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(memberColumns()).
		AddRow("fm1", "u1", "aunt@example.com", "Aunt", "caregiver",
			[]byte(`{"view":true}`), "pending", "hash", time.Now(), nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*owner_user_id.*FROM\s+family_members\s+WHERE\s+id\s*=\s*\$1\s+FOR\s+UPDATE`).
		WithArgs("fm1").WillReturnRows(rows)
	mock.ExpectExec(`(?s)^UPDATE\s+family_members\s+SET\s+status`).
		WithArgs("fm1", models.InviteAccepted).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var seenHash string
	member, err := repo.Redeem(context.Background(), "fm1", func(row *Row) error {
		seenHash = row.CodeHash
		return nil
	})
	if err != nil {
		t.Fatalf("Redeem error: %v", err)
	}
	if seenHash != "hash" {
		t.Errorf("verify saw hash %q", seenHash)
	}
	if member.Status != models.InviteAccepted {
		t.Errorf("expected accepted status, got %q", member.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedeem_VerifyErrorRollsBack(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(memberColumns()).
		AddRow("fm1", "u1", "aunt@example.com", "Aunt", "caregiver",
			[]byte(`{"view":true}`), "pending", "hash", time.Now(), nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*owner_user_id.*FOR\s+UPDATE`).
		WithArgs("fm1").WillReturnRows(rows)
	mock.ExpectRollback()

	wrongCode := errors.New("wrong code")
	_, err := repo.Redeem(context.Background(), "fm1", func(row *Row) error {
		return wrongCode
	})
	if !errors.Is(err, wrongCode) {
		t.Fatalf("expected verify error to surface, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("status update must not run when verify fails: %v", err)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+family_members`).
		WithArgs("missing", models.InviteRevoked).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", models.InviteRevoked)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Errorf("expected ErrorNotFound, got %v", err)
	}
}
