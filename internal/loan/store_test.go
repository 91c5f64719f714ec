package loan

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loandesk/internal/common/config"
	"loandesk/internal/common/database"
)

func newMockStore(t *testing.T) (*PostgresSnapshotStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresSnapshotStore(&database.PostgresClient{DB: db}), mock
}

func TestPostgresSnapshotStoreSave(t *testing.T) {
	store, mock := newMockStore(t)
	state := NewDefaultState(config.LoanConfig{})

	mock.ExpectExec("INSERT INTO loan_sessions").
		WithArgs("officer-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Save(context.Background(), "officer-1", state)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotStoreLoad(t *testing.T) {
	t.Run("returns stored state", func(t *testing.T) {
		store, mock := newMockStore(t)

		stored := NewDefaultState(config.LoanConfig{})
		stored.InterestRate = 3.9
		doc, err := json.Marshal(stored)
		require.NoError(t, err)

		mock.ExpectQuery("SELECT state FROM loan_sessions").
			WithArgs("officer-1").
			WillReturnRows(sqlmock.NewRows([]string{"state"}).AddRow(doc))

		state, err := store.Load(context.Background(), "officer-1")
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, 3.9, state.InterestRate)
		assert.Len(t, state.Properties, 1)
	})

	t.Run("missing snapshot returns nil, nil", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery("SELECT state FROM loan_sessions").
			WithArgs("officer-2").
			WillReturnRows(sqlmock.NewRows([]string{"state"}))

		state, err := store.Load(context.Background(), "officer-2")
		require.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("corrupt document returns error", func(t *testing.T) {
		store, mock := newMockStore(t)

		mock.ExpectQuery("SELECT state FROM loan_sessions").
			WithArgs("officer-3").
			WillReturnRows(sqlmock.NewRows([]string{"state"}).AddRow([]byte("{broken")))

		state, err := store.Load(context.Background(), "officer-3")
		assert.Error(t, err)
		assert.Nil(t, state)
	})
}
