package services

import (
	"context"
	"errors"

	"github.com/ak/macrolog/internal/domain/models"
	"github.com/ak/macrolog/internal/domain/repositories"
)

// maxUpdateAttempts bounds the optimistic-concurrency retry loop on the user
// document.
const maxUpdateAttempts = 3

// mutateUser loads the user's document, applies fn and persists the fields fn
// returns with a version check-and-set. On a version conflict the whole
// read-mutate-write cycle reruns against a fresh document. fn returning a nil
// field map means nothing to persist.
func mutateUser(
	ctx context.Context,
	users repositories.UserRepository,
	uid string,
	fn func(doc *models.UserDocument) (map[string]any, error),
) error {
	var lastErr error
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		doc, err := users.GetByUID(ctx, uid)
		if err != nil {
			return err
		}

		fields, err := fn(doc)
		if err != nil {
			return err
		}
		if fields == nil {
			return nil
		}

		err = users.UpdateFields(ctx, uid, doc.Version, fields)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrVersionConflict) {
			return err
		}
		lastErr = err
	}
	return lastErr
}
