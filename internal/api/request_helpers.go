package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/phrazzld/taskhub-api/internal/api/shared"
	"github.com/phrazzld/taskhub-api/internal/domain"
)

// decodeRequest decodes the request body into v, translating JSON type
// mismatches into field-level validation errors so clients learn which
// field carried the wrong type.
func decodeRequest(r *http.Request, v interface{}) error {
	if err := shared.DecodeJSON(r, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.NewValidationError(
				typeErr.Field,
				fmt.Sprintf("must be of type %s", typeErr.Type),
				err,
			)
		}
		return domain.NewValidationError("body", "must be valid JSON", err)
	}
	return nil
}

// parseDeadline parses an optional RFC 3339 deadline string. A nil
// input yields a nil deadline; a present but malformed value is a
// validation error naming the field.
func parseDeadline(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, domain.NewValidationError(
			"deadline",
			"must be an RFC 3339 timestamp",
			domain.ErrInvalidDeadline,
		)
	}
	utc := t.UTC()
	return &utc, nil
}

// respondWithMappedError maps a service/store error to its status code
// and safe message, logging the full detail.
func respondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
