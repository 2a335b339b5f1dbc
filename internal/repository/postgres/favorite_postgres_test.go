package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestFavoritePostgres_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFavoritePostgres(db)
	ctx := context.Background()

	t.Run("new mark", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO favorites").
			WithArgs("user-1", "f-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		inserted, err := repo.Insert(ctx, "user-1", "f-1")

		assert.NoError(t, err)
		assert.True(t, inserted)
	})

	t.Run("conflict means already marked", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO favorites").
			WithArgs("user-1", "f-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		inserted, err := repo.Insert(ctx, "user-1", "f-1")

		assert.NoError(t, err)
		assert.False(t, inserted)
	})
}

func TestFavoritePostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFavoritePostgres(db)
	ctx := context.Background()

	t.Run("removes the mark", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM favorites").
			WithArgs("user-1", "f-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "user-1", "f-1"))
	})

	t.Run("missing mark is not an error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM favorites").
			WithArgs("user-1", "f-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Delete(ctx, "user-1", "f-1"))
	})
}

func TestFavoritePostgres_ListFileIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewFavoritePostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"file_id"}).
		AddRow("f-1").
		AddRow("f-2")

	mock.ExpectQuery("SELECT file_id FROM favorites").
		WithArgs("user-1").
		WillReturnRows(rows)

	ids, err := repo.ListFileIDs(ctx, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"f-1", "f-2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
