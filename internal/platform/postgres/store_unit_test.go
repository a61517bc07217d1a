package postgres

import (
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// WithTx can only be exercised structurally without a live database;
// transactional behavior is covered by the integration tests.

func TestUserStoreWithTx(t *testing.T) {
	db := &sql.DB{}
	s := NewPostgresUserStore(db, slog.Default())

	tx := &sql.Tx{}
	result := s.WithTx(tx)

	txStore, ok := result.(*PostgresUserStore)
	assert.True(t, ok, "WithTx should return a PostgresUserStore instance")
	assert.Same(t, tx, txStore.db.(*sql.Tx))
	assert.Same(t, db, s.db.(*sql.DB), "original store keeps its connection")
}

func TestGroupStoreWithTx(t *testing.T) {
	s := NewPostgresGroupStore(&sql.DB{}, slog.Default())

	tx := &sql.Tx{}
	result := s.WithTx(tx)

	txStore, ok := result.(*PostgresGroupStore)
	assert.True(t, ok, "WithTx should return a PostgresGroupStore instance")
	assert.Same(t, tx, txStore.db.(*sql.Tx))
}

func TestMembershipStoreWithTx(t *testing.T) {
	s := NewPostgresMembershipStore(&sql.DB{}, slog.Default())

	tx := &sql.Tx{}
	result := s.WithTx(tx)

	txStore, ok := result.(*PostgresMembershipStore)
	assert.True(t, ok, "WithTx should return a PostgresMembershipStore instance")
	assert.Same(t, tx, txStore.db.(*sql.Tx))
}

func TestTaskStoreWithTx(t *testing.T) {
	s := NewPostgresTaskStore(&sql.DB{}, slog.Default())

	tx := &sql.Tx{}
	result := s.WithTx(tx)

	txStore, ok := result.(*PostgresTaskStore)
	assert.True(t, ok, "WithTx should return a PostgresTaskStore instance")
	assert.Same(t, tx, txStore.db.(*sql.Tx))
}

func TestNewStorePanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() { NewPostgresUserStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresGroupStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresMembershipStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresTaskStore(nil, nil) })
}
