package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// PostgreSQL error codes
const (
	pgUniqueViolationCode     = "23505"
	pgForeignKeyViolationCode = "23503"
)

// Constraint names from the migrations. Mapping by name lets each
// unique violation surface as the right sentinel.
const (
	constraintUsersEmail        = "users_email_key"
	constraintUsersExternalID   = "users_external_id_key"
	constraintGroupsExternalID  = "groups_external_id_key"
	constraintTasksExternalID   = "tasks_external_id_key"
	constraintTasksGroupTitle   = "tasks_group_id_title_key"
	constraintMembershipsUnique = "memberships_user_id_group_id_key"
)

// isForeignKeyViolation checks if the given error is a PostgreSQL
// foreign key constraint violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode
}

// mapUniqueViolation translates a PostgreSQL unique violation into the
// matching store sentinel error. Returns nil if the error is not a
// unique violation.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolationCode {
		return nil
	}

	switch pgErr.ConstraintName {
	case constraintUsersEmail:
		return store.ErrEmailExists
	case constraintUsersExternalID, constraintGroupsExternalID, constraintTasksExternalID:
		return store.ErrExternalIDExists
	case constraintTasksGroupTitle:
		return store.ErrTitleExists
	case constraintMembershipsUnique:
		return store.ErrMembershipExists
	default:
		return store.ErrDuplicate
	}
}
