// Package service provides application-level services for managing
// users, groups, memberships and tasks. Services own transactional
// boundaries: every mutation runs inside store.RunInTransaction, and
// notification side effects happen only after a successful commit.
package service
