// Package postgres implements the store interfaces on PostgreSQL via
// database/sql and the pgx stdlib driver. Uniqueness and referential
// integrity are enforced by database constraints; constraint
// violations are translated into the store package's sentinel errors.
package postgres
