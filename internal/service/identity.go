package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// maxExternalIDAttempts bounds the collision-retry loop. UUID collisions
// are vanishingly rare; hitting the bound repeatedly indicates a broken
// store, not bad luck.
const maxExternalIDAttempts = 3

// ExistsFunc reports whether an external identifier is already taken.
type ExistsFunc func(ctx context.Context, externalID string) (bool, error)

// GenerateExternalID produces a random 128-bit identifier rendered as a
// canonical UUID string, checking the store for collisions and
// regenerating up to maxExternalIDAttempts times.
// Returns ErrIDGenerationExhausted when every attempt collided.
func GenerateExternalID(ctx context.Context, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < maxExternalIDAttempts; attempt++ {
		id := uuid.NewString()

		taken, err := exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("checking external ID availability: %w", err)
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrIDGenerationExhausted
}
