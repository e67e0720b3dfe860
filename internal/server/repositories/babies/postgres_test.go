package babies

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

func TestUpsert_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	baby := &models.Baby{
		ID:        "b1",
		Name:      "Luna",
		BirthDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		Gender:    models.GenderFemale,
	}

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+babies.*ON\s+CONFLICT\s*\(id\)\s+DO\s+UPDATE`).
		WithArgs("b1", "u1", "Luna", baby.BirthDate, 0.0, 0.0, baby.Gender, "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Upsert(context.Background(), "u1", baby); err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*name.*FROM\s+babies\s+WHERE\s+id`).
		WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Errorf("expected ErrorNotFound, got %v", err)
	}
}

func TestListByUser_Order(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	cols := []string{"id", "name", "birth_date", "weight_grams", "height_cm", "gender", "avatar_url"}
	rows := sqlmock.NewRows(cols).
		AddRow("b1", "Luna", time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), 3200.0, 50.0, "female", "").
		AddRow("b2", "Milo", time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC), 3500.0, 51.0, "male", "")

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*name.*FROM\s+babies\s+WHERE\s+user_id.*ORDER\s+BY\s+birth_date`).
		WithArgs("u1").WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b1" || got[1].ID != "b2" {
		t.Errorf("unexpected result: %+v", got)
	}
}
