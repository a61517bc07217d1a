// Package api contains the HTTP handlers, request/response models, and
// the error-to-status-code mapping. Handlers validate input, call the
// service layer, and shape responses; no business rules live here.
package api
