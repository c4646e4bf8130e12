package migrate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func writeMigration(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestUpAppliesPendingInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	dir := t.TempDir()
	writeMigration(t, dir, "0002_memberships.up.sql", "create table org_memberships_stub")
	writeMigration(t, dir, "0001_users.up.sql", "create table users_stub")
	writeMigration(t, dir, "0001_users.down.sql", "drop table users_stub")

	mock.ExpectExec("create table if not exists schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("select name from schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("0001_users.up.sql"))
	mock.ExpectExec("create table org_memberships_stub").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("insert into schema_migrations").
		WithArgs("0002_memberships.up.sql").
		WillReturnResult(sqlmock.NewResult(1, 1))

	mgr := NewManager(db, dir)
	if err := mgr.Up(context.Background()); err != nil {
		t.Fatalf("Up: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDownRollsBackLastApplied(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	dir := t.TempDir()
	writeMigration(t, dir, "0001_users.up.sql", "create table users_stub")
	writeMigration(t, dir, "0001_users.down.sql", "drop table users_stub")

	mock.ExpectExec("create table if not exists schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("select name from schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("0001_users.up.sql"))
	mock.ExpectExec("drop table users_stub").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("delete from schema_migrations").
		WithArgs("0001_users.up.sql").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mgr := NewManager(db, dir)
	if err := mgr.Down(context.Background()); err != nil {
		t.Fatalf("Down: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDownWithoutHistoryFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("create table if not exists schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("select name from schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	mgr := NewManager(db, t.TempDir())
	if err := mgr.Down(context.Background()); err == nil {
		t.Fatal("expected error with no applied migrations")
	}
}
