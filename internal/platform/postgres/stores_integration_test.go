package postgres_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/platform/postgres"
	"github.com/phrazzld/taskhub-api/internal/store"
	"github.com/phrazzld/taskhub-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func insertUser(ctx context.Context, t *testing.T, users store.UserStore, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(uuid.NewString(), "Test User", email, "correct-horse-battery")
	require.NoError(t, err)
	user.HashedPassword = "$2a$10$notarealhashbutlongenoughforthecolumn"
	user.Password = ""
	require.NoError(t, users.Create(ctx, user))
	return user
}

func insertGroup(ctx context.Context, t *testing.T, groups store.GroupStore, name string) *domain.Group {
	t.Helper()
	group, err := domain.NewGroup(uuid.NewString(), name)
	require.NoError(t, err)
	require.NoError(t, groups.Create(ctx, group))
	return group
}

func TestUserStoreIntegration(t *testing.T) {
	db := testutils.GetTestDB(t)
	ctx := context.Background()

	t.Run("round-trips a user", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := postgres.NewPostgresUserStore(db, discardLogger()).WithTx(tx)

			created := insertUser(ctx, t, users, "roundtrip@example.com")

			got, err := users.GetByExternalID(ctx, created.ExternalID)
			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
			assert.Equal(t, "roundtrip@example.com", got.Email)

			byEmail, err := users.GetByEmail(ctx, "roundtrip@example.com")
			require.NoError(t, err)
			assert.Equal(t, created.ID, byEmail.ID)
		})
	})

	t.Run("duplicate email maps to ErrEmailExists", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := postgres.NewPostgresUserStore(db, discardLogger()).WithTx(tx)

			insertUser(ctx, t, users, "taken@example.com")

			dup, err := domain.NewUser(uuid.NewString(), "Other", "taken@example.com", "correct-horse-battery")
			require.NoError(t, err)
			dup.HashedPassword = "$2a$10$notarealhashbutlongenoughforthecolumn"

			err = users.Create(ctx, dup)
			assert.ErrorIs(t, err, store.ErrEmailExists)
		})
	})

	t.Run("delete removes the user", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := postgres.NewPostgresUserStore(db, discardLogger()).WithTx(tx)

			user := insertUser(ctx, t, users, "gone@example.com")
			require.NoError(t, users.Delete(ctx, user.ID))

			_, err := users.GetByID(ctx, user.ID)
			assert.ErrorIs(t, err, store.ErrUserNotFound)

			assert.ErrorIs(t, users.Delete(ctx, user.ID), store.ErrUserNotFound)
		})
	})
}

func TestMembershipStoreIntegration(t *testing.T) {
	db := testutils.GetTestDB(t)
	ctx := context.Background()

	t.Run("enforces one membership per user and group", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			log := discardLogger()
			users := postgres.NewPostgresUserStore(db, log).WithTx(tx)
			groups := postgres.NewPostgresGroupStore(db, log).WithTx(tx)
			memberships := postgres.NewPostgresMembershipStore(db, log).WithTx(tx)

			user := insertUser(ctx, t, users, "member@example.com")
			group := insertGroup(ctx, t, groups, "Engineering")

			first, err := domain.NewMembership(user.ID, group.ID, domain.RoleAdmin)
			require.NoError(t, err)
			require.NoError(t, memberships.Create(ctx, first))

			second, err := domain.NewMembership(user.ID, group.ID, "member")
			require.NoError(t, err)
			assert.ErrorIs(t, memberships.Create(ctx, second), store.ErrMembershipExists)
		})
	})

	t.Run("rejects memberships for unknown users", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			log := discardLogger()
			groups := postgres.NewPostgresGroupStore(db, log).WithTx(tx)
			memberships := postgres.NewPostgresMembershipStore(db, log).WithTx(tx)

			group := insertGroup(ctx, t, groups, "Engineering")

			orphan, err := domain.NewMembership(uuid.New(), group.ID, "member")
			require.NoError(t, err)
			assert.ErrorIs(t, memberships.Create(ctx, orphan), store.ErrInvalidEntity)
		})
	})

	t.Run("deleting a group cascades to memberships and tasks", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			log := discardLogger()
			users := postgres.NewPostgresUserStore(db, log).WithTx(tx)
			groups := postgres.NewPostgresGroupStore(db, log).WithTx(tx)
			memberships := postgres.NewPostgresMembershipStore(db, log).WithTx(tx)
			tasks := postgres.NewPostgresTaskStore(db, log).WithTx(tx)

			user := insertUser(ctx, t, users, "cascade@example.com")
			group := insertGroup(ctx, t, groups, "Doomed")

			membership, err := domain.NewMembership(user.ID, group.ID, domain.RoleAdmin)
			require.NoError(t, err)
			require.NoError(t, memberships.Create(ctx, membership))

			task, err := domain.NewTask(group.ID, uuid.NewString(), "Orphan me", "", 0, nil)
			require.NoError(t, err)
			require.NoError(t, tasks.Create(ctx, task))

			require.NoError(t, groups.Delete(ctx, group.ID))

			_, err = memberships.GetByUserAndGroup(ctx, user.ID, group.ID)
			assert.ErrorIs(t, err, store.ErrMembershipNotFound)

			remaining, err := tasks.ListByGroup(ctx, group.ID)
			require.NoError(t, err)
			assert.Empty(t, remaining)

			// The user survives the group.
			_, err = users.GetByID(ctx, user.ID)
			assert.NoError(t, err)
		})
	})
}

func TestTaskStoreIntegration(t *testing.T) {
	db := testutils.GetTestDB(t)
	ctx := context.Background()

	t.Run("title is unique per group, not globally", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			log := discardLogger()
			groups := postgres.NewPostgresGroupStore(db, log).WithTx(tx)
			tasks := postgres.NewPostgresTaskStore(db, log).WithTx(tx)

			first := insertGroup(ctx, t, groups, "Alpha")
			second := insertGroup(ctx, t, groups, "Beta")

			task, err := domain.NewTask(first.ID, uuid.NewString(), "Ship it", "", 0, nil)
			require.NoError(t, err)
			require.NoError(t, tasks.Create(ctx, task))

			sameGroup, err := domain.NewTask(first.ID, uuid.NewString(), "Ship it", "", 0, nil)
			require.NoError(t, err)
			assert.ErrorIs(t, tasks.Create(ctx, sameGroup), store.ErrTitleExists)

			otherGroup, err := domain.NewTask(second.ID, uuid.NewString(), "Ship it", "", 0, nil)
			require.NoError(t, err)
			assert.NoError(t, tasks.Create(ctx, otherGroup))
		})
	})

	t.Run("lists tasks due inside a window", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			log := discardLogger()
			groups := postgres.NewPostgresGroupStore(db, log).WithTx(tx)
			tasks := postgres.NewPostgresTaskStore(db, log).WithTx(tx)

			group := insertGroup(ctx, t, groups, "Deadlines")
			now := time.Now().UTC().Truncate(time.Second)

			mkTask := func(title string, deadline *time.Time) {
				task, err := domain.NewTask(group.ID, uuid.NewString(), title, "", 0, deadline)
				require.NoError(t, err)
				require.NoError(t, tasks.Create(ctx, task))
			}

			soon := now.Add(24 * time.Hour)
			far := now.Add(30 * 24 * time.Hour)
			mkTask("due soon", &soon)
			mkTask("due far", &far)
			mkTask("no deadline", nil)

			due, err := tasks.ListDueBetween(ctx, now, now.Add(4*24*time.Hour))
			require.NoError(t, err)
			require.Len(t, due, 1)
			assert.Equal(t, "due soon", due[0].Title)
			require.NotNil(t, due[0].Deadline)
			assert.True(t, due[0].Deadline.Equal(soon))
		})
	})

	t.Run("deletes are scoped to the owning group", func(t *testing.T) {
		testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			log := discardLogger()
			groups := postgres.NewPostgresGroupStore(db, log).WithTx(tx)
			tasks := postgres.NewPostgresTaskStore(db, log).WithTx(tx)

			owner := insertGroup(ctx, t, groups, "Owner")
			other := insertGroup(ctx, t, groups, "Other")

			task, err := domain.NewTask(owner.ID, uuid.NewString(), "Mine", "", 0, nil)
			require.NoError(t, err)
			require.NoError(t, tasks.Create(ctx, task))

			assert.ErrorIs(t, tasks.Delete(ctx, other.ID, task.ExternalID), store.ErrTaskNotFound)
			assert.NoError(t, tasks.Delete(ctx, owner.ID, task.ExternalID))
		})
	})
}
