// Package store defines the persistence-port interfaces for the task
// hub's entities, the sentinel errors shared by all implementations,
// and the transaction helper used by the service layer.
package store
