package department_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"hris-account/internal/department"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestRepository_Exists(t *testing.T) {
	countQuery := regexp.QuoteMeta(`SELECT count(*) FROM "departments" WHERE id = $1 AND "departments"."deleted_at" IS NULL`)

	setup := func(t *testing.T) (department.Repository, sqlmock.Sqlmock) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
		assert.NoError(t, err)
		return department.NewRepository(gdb), mock
	}

	t.Run("present", func(t *testing.T) {
		repo, mock := setup(t)
		mock.ExpectQuery(countQuery).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		ok, err := repo.Exists(context.Background(), uuid.New())
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("absent", func(t *testing.T) {
		repo, mock := setup(t)
		mock.ExpectQuery(countQuery).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		ok, err := repo.Exists(context.Background(), uuid.New())
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := setup(t)
		mock.ExpectQuery(countQuery).WillReturnError(errors.New("timeout"))

		_, err := repo.Exists(context.Background(), uuid.New())
		assert.EqualError(t, err, "timeout")
	})
}
