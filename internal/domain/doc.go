// Package domain defines the core business entities of the task hub:
// users, groups, memberships, and tasks, along with their validation
// rules and sentinel errors.
package domain
