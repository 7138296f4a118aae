package cooperatives

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	return NewRepository(gormDB), mock
}

func TestListActiveQueriesOnlyActiveCoops(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "region", "phone", "is_active", "created_at", "updated_at"}).
		AddRow(uuid.NewString(), "COTISSE", "Analamanga", "0321112233", true, now, now).
		AddRow(uuid.NewString(), "KOFIMANGA", "Vakinankaratra", "0334445566", true, now, now)

	mock.ExpectQuery(`SELECT (.+) FROM "cooperatives" WHERE is_active = \$1 ORDER BY name ASC`).
		WithArgs(true).
		WillReturnRows(rows)

	coops, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(coops) != 2 {
		t.Fatalf("got %d cooperatives, want 2", len(coops))
	}
	if coops[0].Name != "COTISSE" || coops[1].Name != "KOFIMANGA" {
		t.Errorf("names = %q, %q", coops[0].Name, coops[1].Name)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM "cooperatives" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "region", "phone", "is_active", "created_at", "updated_at"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrCooperativeNotFound) {
		t.Fatalf("err = %v, want ErrCooperativeNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateReportsMissingCoop(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE "cooperatives" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), uuid.New(), map[string]interface{}{"region": "Atsinanana"})
	if !errors.Is(err, ErrCooperativeNotFound) {
		t.Fatalf("err = %v, want ErrCooperativeNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteRemovesRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM "cooperatives" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), uuid.New()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
